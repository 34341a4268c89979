package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/samurai100996/property-preview/models"
	"github.com/samurai100996/property-preview/repository"
	"github.com/samurai100996/property-preview/storage"
)

type fakePropertyRepo struct {
	properties []models.Property
	listErr    error
	getErr     error
	createErr  error
	created    []models.Property
}

func (f *fakePropertyRepo) List(ctx context.Context) ([]models.Property, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.properties, nil
}

func (f *fakePropertyRepo) Get(ctx context.Context, id string) (*models.Property, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.properties {
		if f.properties[i].ID.Hex() == id {
			return &f.properties[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePropertyRepo) Create(ctx context.Context, property *models.Property) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	property.ID = primitive.NewObjectID()
	property.CreatedAt = time.Now()
	f.created = append(f.created, *property)
	f.properties = append(f.properties, *property)
	return property.ID.Hex(), nil
}

func (f *fakePropertyRepo) Delete(ctx context.Context, id string) (*models.Property, error) {
	for i := range f.properties {
		if f.properties[i].ID.Hex() == id {
			deleted := f.properties[i]
			f.properties = append(f.properties[:i], f.properties[i+1:]...)
			return &deleted, nil
		}
	}
	return nil, repository.ErrNotFound
}

func newTestContext(method, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListPropertiesEmptyCatalog(t *testing.T) {
	pc := &PropertyController{repo: &fakePropertyRepo{}}
	c, rec := newTestContext(http.MethodGet, "/api/properties", "")

	if err := pc.ListProperties(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No properties available") {
		t.Errorf("empty catalog must carry its message: %s", rec.Body.String())
	}
}

func TestListPropertiesFetchError(t *testing.T) {
	pc := &PropertyController{repo: &fakePropertyRepo{listErr: &repository.FetchError{Err: errors.New("down")}}}
	c, rec := newTestContext(http.MethodGet, "/api/properties", "")

	if err := pc.ListProperties(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestGetPropertyNotFound(t *testing.T) {
	pc := &PropertyController{repo: &fakePropertyRepo{}}
	c, rec := newTestContext(http.MethodGet, "/", "")
	c.SetPath("/api/properties/:id")
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	if err := pc.GetProperty(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing id must be 404, not a transport error: got %d", rec.Code)
	}
}

func TestGetPropertyTransportError(t *testing.T) {
	pc := &PropertyController{repo: &fakePropertyRepo{getErr: &repository.FetchError{Err: errors.New("down")}}}
	c, rec := newTestContext(http.MethodGet, "/", "")
	c.SetPath("/api/properties/:id")
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())

	if err := pc.GetProperty(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("transport failure must be 500, got %d", rec.Code)
	}
}

func TestGetPropertyRendersDetail(t *testing.T) {
	property := models.Property{ID: primitive.NewObjectID(), Title: "Sea View Villa"}
	pc := &PropertyController{repo: &fakePropertyRepo{properties: []models.Property{property}}}
	c, rec := newTestContext(http.MethodGet, "/", "")
	c.SetPath("/api/properties/:id")
	c.SetParamNames("id")
	c.SetParamValues(property.ID.Hex())

	if err := pc.GetProperty(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sea View Villa") {
		t.Errorf("detail must carry the record: %s", rec.Body.String())
	}
}

func TestCreatePropertyNormalizesFacing(t *testing.T) {
	repo := &fakePropertyRepo{}
	pc := &PropertyController{repo: repo}
	c, rec := newTestContext(http.MethodPost, "/api/admin/properties",
		`{"title":"Villa","facing":"East","amenities":["WiFi","WiFi","TV"]}`)

	if err := pc.CreateProperty(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one created record, got %d", len(repo.created))
	}
	if repo.created[0].Facing != "east" {
		t.Errorf("facing must persist lower-cased, got %q", repo.created[0].Facing)
	}
	if len(repo.created[0].Amenities) != 2 {
		t.Errorf("duplicate amenities must be dropped, got %v", repo.created[0].Amenities)
	}
}

func TestCreatePropertyValidation(t *testing.T) {
	pc := &PropertyController{repo: &fakePropertyRepo{}}

	c, rec := newTestContext(http.MethodPost, "/api/admin/properties", `{"facing":"East"}`)
	if err := pc.CreateProperty(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing title must be 400, got %d", rec.Code)
	}

	c, rec = newTestContext(http.MethodPost, "/api/admin/properties",
		`{"title":"Villa","videoUrl":"https://example.com/clip.mp4"}`)
	if err := pc.CreateProperty(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unrecognized video link must be 400, got %d", rec.Code)
	}
}

func TestCreatePropertyBlockedWhileUploadsBusy(t *testing.T) {
	pc := &PropertyController{
		repo:      &fakePropertyRepo{},
		batchBusy: func(batchID string) bool { return batchID == "b1" },
	}
	c, rec := newTestContext(http.MethodPost, "/api/admin/properties",
		`{"title":"Villa","batchId":"b1"}`)

	if err := pc.CreateProperty(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("save during an unsettled batch must be 409, got %d", rec.Code)
	}
}

func TestCreatePropertyPreservesDraftOnWriteError(t *testing.T) {
	pc := &PropertyController{repo: &fakePropertyRepo{createErr: &repository.WriteError{Op: "create", Err: errors.New("down")}}}
	c, rec := newTestContext(http.MethodPost, "/api/admin/properties", `{"title":"Villa"}`)

	if err := pc.CreateProperty(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("write failure must surface as 500, got %d", rec.Code)
	}
}

func TestDeletePropertyRequiresConfirmation(t *testing.T) {
	pc := &PropertyController{repo: &fakePropertyRepo{}}
	c, rec := newTestContext(http.MethodDelete, "/?confirm=false", "")
	c.SetPath("/api/admin/properties/:id")
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())

	if err := pc.DeleteProperty(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unconfirmed delete must be 400, got %d", rec.Code)
	}
}

func TestDeletePropertyCleansUpBlobs(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewDiskStore(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}
	objectPath := filepath.Join(dir, "properties", "cover.jpg")
	if err := os.MkdirAll(filepath.Dir(objectPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(objectPath, []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}

	property := models.Property{
		ID:    primitive.NewObjectID(),
		Files: []models.FileDescriptor{{URL: "/uploads/properties/cover.jpg"}},
	}
	pc := &PropertyController{
		repo:  &fakePropertyRepo{properties: []models.Property{property}},
		store: store,
	}

	c, rec := newTestContext(http.MethodDelete, "/?confirm=true", "")
	c.SetPath("/api/admin/properties/:id")
	c.SetParamNames("id")
	c.SetParamValues(property.ID.Hex())

	if err := pc.DeleteProperty(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if _, err := os.Stat(objectPath); !os.IsNotExist(err) {
		t.Error("deleting a property should remove its stored media")
	}
}

func TestDeletePropertyNotFound(t *testing.T) {
	pc := &PropertyController{repo: &fakePropertyRepo{}}
	c, rec := newTestContext(http.MethodDelete, "/?confirm=true", "")
	c.SetPath("/api/admin/properties/:id")
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())

	if err := pc.DeleteProperty(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
