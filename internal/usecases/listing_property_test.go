package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"video-share/internal/domain/dto"
	infra_repo "video-share/internal/infrastructure/repositories"
	"video-share/pkg/constants"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func seededListing(n int) ListingService {
	repo := infra_repo.NewInMemoryVideoRepository()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		repo.Create(ctx, &dto.VideoDTO{
			VideoID:    fmt.Sprintf("vid-%03d", i),
			UploaderID: "user-1",
			Title:      fmt.Sprintf("Title %03d", i),
			Status:     constants.StatusUploaded,
			UploadDate: time.Now().UTC(),
		})
	}
	return NewListingService(repo)
}

// TestListPaginationProperties checks that pages partition the ordered
// corpus exactly, for any corpus size and page size.
func TestListPaginationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("pages partition the ordered corpus", prop.ForAll(
		func(n, limit int) bool {
			svc := seededListing(n)
			ctx := context.Background()

			wantPages := (n + limit - 1) / limit
			var collected []dto.VideoDTO
			page := 1
			for {
				result, err := svc.List(ctx, &limit, page)
				if err != nil {
					return false
				}
				if result.Count != n || result.TotalPages != wantPages {
					return false
				}
				if len(result.Videos) == 0 {
					break
				}
				if len(result.Videos) > limit {
					return false
				}
				if result.StartIndex != len(collected)+1 {
					return false
				}
				collected = append(collected, result.Videos...)
				if result.EndIndex != len(collected) {
					return false
				}
				page++
			}

			if len(collected) != n {
				return false
			}
			for i := 1; i < len(collected); i++ {
				if collected[i-1].Title > collected[i].Title {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 30),
		gen.IntRange(1, 10),
	))

	properties.Property("past-end pages are empty, never an error", prop.ForAll(
		func(n, limit, overshoot int) bool {
			svc := seededListing(n)

			totalPages := (n + limit - 1) / limit
			result, err := svc.List(context.Background(), &limit, totalPages+overshoot)
			if err != nil {
				return false
			}
			return len(result.Videos) == 0 || overshoot == 0
		},
		gen.IntRange(0, 20),
		gen.IntRange(1, 5),
		gen.IntRange(0, 5),
	))

	properties.TestingRun(t)
}

// TestRecommendProperties checks the sample bound and membership for
// any corpus size.
func TestRecommendProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("sample is bounded and drawn from the corpus", prop.ForAll(
		func(n int) bool {
			svc := seededListing(n)

			sample, err := svc.Recommend(context.Background())
			if err != nil {
				return false
			}

			want := n
			if want > RecommendSize {
				want = RecommendSize
			}
			if len(sample) != want {
				return false
			}

			seen := map[string]bool{}
			for _, v := range sample {
				if v.Status != constants.StatusUploaded || seen[v.VideoID] {
					return false
				}
				seen[v.VideoID] = true
			}
			return true
		},
		gen.IntRange(0, 25),
	))

	properties.TestingRun(t)
}
