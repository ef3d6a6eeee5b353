package service

import (
	"sort"

	"github.com/tuanng-dev/quizhive/internal/dto"
	"github.com/tuanng-dev/quizhive/internal/model"
)

type LeaderboardService interface {
	Rank(participants []model.Participant) []dto.LeaderboardEntry
}

type leaderboardService struct{}

func NewLeaderboardService() LeaderboardService {
	return &leaderboardService{}
}

// Rank orders participants by score descending. Participants with equal
// scores keep their relative enrollment order. Rank numbers follow
// standard competition ranking: tied scores share a rank and the next
// distinct score resumes at its 1-based position, so {500, 500, 300}
// ranks as 1, 1, 3. Truncation to a top-K is a display concern handled
// by the caller.
func (s *leaderboardService) Rank(participants []model.Participant) []dto.LeaderboardEntry {
	sorted := make([]model.Participant, len(participants))
	copy(sorted, participants)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].EnrolledAt.Before(sorted[j].EnrolledAt)
	})

	entries := make([]dto.LeaderboardEntry, len(sorted))
	for i, p := range sorted {
		rank := i + 1
		if i > 0 && p.Score == sorted[i-1].Score {
			rank = entries[i-1].Rank
		}
		entries[i] = dto.LeaderboardEntry{
			ParticipantID: p.ID,
			DisplayName:   p.DisplayName,
			Score:         p.Score,
			Rank:          rank,
		}
	}
	return entries
}
