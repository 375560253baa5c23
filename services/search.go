package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"hotelbook/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// ScoredHotel là kết quả tìm kiếm kèm điểm phù hợp
type ScoredHotel struct {
	Hotel models.Hotel `json:"hotel"`
	Score int          `json:"score"`
}

// Hàm chuẩn hóa chuỗi: bỏ dấu, chữ thường
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len([]rune(a)))
	if l := float64(len([]rune(b))); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

func prepareUniqueLocations(hotels []models.Hotel) []string {
	unique := make(map[string]bool)
	for _, h := range hotels {
		if loc := normalizeInput(h.Location); loc != "" {
			unique[loc] = true
		}
	}
	out := make([]string, 0, len(unique))
	for loc := range unique {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

func calculateScore(query string, hotel models.Hotel, closestLocation string) int {
	name := normalizeInput(hotel.Name)
	location := normalizeInput(hotel.Location)
	score := 0

	if strings.Contains(name, query) {
		score += 20
	} else if calculateSimilarity(query, name) > 0.7 {
		score += 10
	}
	if location != "" {
		if strings.Contains(location, query) || strings.Contains(query, location) {
			score += 15
		} else if closestLocation == location && calculateSimilarity(query, location) > 0.5 {
			score += 8
		}
	}
	for _, word := range strings.Fields(query) {
		if len(word) < 3 {
			continue
		}
		if strings.Contains(name, word) || strings.Contains(location, word) {
			score += 3
		}
	}
	return score
}

// Search chấm điểm mọi hotel theo tên/địa điểm (không dấu, gần đúng) và
// trả về các hotel có điểm > 0, điểm cao trước
func (s *HotelService) Search(ctx context.Context, query string) ([]ScoredHotel, error) {
	hotels, err := s.hotels.All(ctx)
	if err != nil {
		return nil, err
	}
	normalized := normalizeInput(query)
	if normalized == "" {
		out := make([]ScoredHotel, 0, len(hotels))
		for _, h := range hotels {
			out = append(out, ScoredHotel{Hotel: h})
		}
		return out, nil
	}

	closestLocation := ""
	if locations := prepareUniqueLocations(hotels); len(locations) > 0 {
		closestLocation = createMatcher(locations).Closest(normalized)
	}

	scoreCh := make(chan ScoredHotel, len(hotels))
	var wg sync.WaitGroup
	for _, h := range hotels {
		wg.Add(1)
		go func(h models.Hotel) {
			defer wg.Done()
			if score := calculateScore(normalized, h, closestLocation); score > 0 {
				scoreCh <- ScoredHotel{Hotel: h, Score: score}
			}
		}(h)
	}
	wg.Wait()
	close(scoreCh)

	results := make([]ScoredHotel, 0, len(hotels))
	for sh := range scoreCh {
		results = append(results, sh)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].Hotel.ID < results[j].Hotel.ID
		}
		return results[i].Score > results[j].Score
	})
	return results, nil
}
