package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"video-share/internal/delivery/http/middleware"
	"video-share/internal/domain/dto"
	infra_repo "video-share/internal/infrastructure/repositories"
	"video-share/internal/usecases"

	"github.com/gofiber/fiber/v2"
)

const claimsHeader = "X-Identity-Claims"

type stubStorage struct{}

func (stubStorage) PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	return "https://storage.test/" + key + "?sig=put", nil
}

func (stubStorage) PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://storage.test/" + key + "?sig=get", nil
}

func (stubStorage) DeleteObjects(ctx context.Context, keys []string) error {
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *infra_repo.InMemoryVideoRepository) {
	t.Helper()
	repo := infra_repo.NewInMemoryVideoRepository()
	videos := usecases.NewVideoService(repo, stubStorage{}, time.Hour)
	listings := usecases.NewListingService(repo)

	app := fiber.New()
	app.Use(middleware.Claims(claimsHeader))
	handler := NewVideoHandler(videos, listings)
	api := app.Group("/api/v1")
	api.Post("/videos", handler.HandleAction)
	api.Post("/videos/play", handler.RequestDownload)
	api.Get("/videos", handler.ListVideos)
	api.Get("/videos/recommended", handler.Recommend)
	api.Get("/videos/:id", handler.GetVideo)
	api.Put("/videos/:id", handler.UpdateVideo)
	api.Delete("/videos/:id", handler.DeleteVideo)
	return app, repo
}

func claimsJSON(t *testing.T, sub string, groups ...string) string {
	t.Helper()
	raw, err := json.Marshal(dto.Claims{Sub: sub, Username: sub, Groups: groups})
	if err != nil {
		t.Fatal(err)
	}
	return string(raw)
}

func doJSON(t *testing.T, app *fiber.App, method, target, claims string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if claims != "" {
		req.Header.Set(claimsHeader, claims)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func uploadBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"action":           "upload",
		"videoTitle":       title,
		"videoDescription": "desc",
		"releaseYear":      2020,
		"platform":         "netflix",
		"contentType":      "video/mp4",
	}
}

func TestUploadActionRequiresAdminClaims(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/videos", "", uploadBody("Video"))
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("anonymous upload: expected 403, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/v1/videos", claimsJSON(t, "user-2", "viewers"), uploadBody("Video"))
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("non-admin upload: expected 403, got %d", resp.StatusCode)
	}
}

func TestUploadActionCreatesIntent(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/videos", claimsJSON(t, "user-1", "admin"), uploadBody("New Video"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var intent dto.UploadIntentDTO
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if intent.URL == "" || intent.ExpiresIn != 3600 {
		t.Errorf("grant wrong: %+v", intent.GrantDTO)
	}
	if intent.Video.Status != "pending" || intent.Video.UploaderID != "user-1" {
		t.Errorf("video wrong: %+v", intent.Video)
	}
}

func TestDuplicateTitleConflictOverHTTP(t *testing.T) {
	app, _ := newTestApp(t)
	claims := claimsJSON(t, "user-1", "admin")

	if resp := doJSON(t, app, http.MethodPost, "/api/v1/videos", claims, uploadBody("Same")); resp.StatusCode != http.StatusCreated {
		t.Fatalf("first upload: expected 201, got %d", resp.StatusCode)
	}
	resp := doJSON(t, app, http.MethodPost, "/api/v1/videos", claims, uploadBody("Same"))
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", resp.StatusCode)
	}

	var body dto.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Error != "conflict" {
		t.Errorf("expected conflict code, got %s", body.Error)
	}
}

func TestInvalidActionRejected(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/videos", claimsJSON(t, "user-1", "admin"),
		map[string]interface{}{"action": "transcode"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPlayIssuesDownloadGrant(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/v1/videos/play", "",
		map[string]interface{}{"action": "download", "key": "user-1/vid-1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var grant dto.GrantDTO
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if grant.URL == "" {
		t.Error("empty grant URL")
	}
}

func TestGetVideoNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/v1/videos/missing", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestUpdateRejectsUnknownFields(t *testing.T) {
	app, repo := newTestApp(t)
	seedVideo(t, repo, "vid-1", "user-1", "Video")

	resp := doJSON(t, app, http.MethodPut, "/api/v1/videos/vid-1", claimsJSON(t, "user-1", "admin"),
		map[string]interface{}{"title": "New", "uploaderId": "someone-else"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown field, got %d", resp.StatusCode)
	}
}

func TestDeleteByNonOwnerForbidden(t *testing.T) {
	app, repo := newTestApp(t)
	seedVideo(t, repo, "vid-1", "user-1", "Video")

	resp := doJSON(t, app, http.MethodDelete, "/api/v1/videos/vid-1", claimsJSON(t, "user-2", "admin"), nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %d", resp.StatusCode)
	}
}

func TestListAndRecommendAreOpen(t *testing.T) {
	app, repo := newTestApp(t)
	seedVideo(t, repo, "vid-1", "user-1", "Alpha")
	seedVideo(t, repo, "vid-2", "user-1", "Bravo")

	resp := doJSON(t, app, http.MethodGet, "/api/v1/videos?limit=1&page=2", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var result dto.PaginatedVideosDTO
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if result.Count != 2 || result.TotalPages != 2 || len(result.Videos) != 1 {
		t.Errorf("pagination wrong: %+v", result)
	}
	if result.Videos[0].Title != "Bravo" {
		t.Errorf("expected Bravo on page 2, got %s", result.Videos[0].Title)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/v1/videos/recommended", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("recommend: expected 200, got %d", resp.StatusCode)
	}
}

func seedVideo(t *testing.T, repo *infra_repo.InMemoryVideoRepository, id, uploader, title string) {
	t.Helper()
	err := repo.Create(context.Background(), &dto.VideoDTO{
		VideoID:    id,
		UploaderID: uploader,
		StorageKey: uploader + "/" + id,
		Title:      title,
		Status:     "uploaded",
		UploadDate: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}
