package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/samurai100996/property-preview/models"
	"github.com/samurai100996/property-preview/repository"
)

type fakeEnquiryRepo struct {
	enquiries []models.Enquiry
	createErr error
	listErr   error
}

func (f *fakeEnquiryRepo) Create(ctx context.Context, enquiry *models.Enquiry) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	enquiry.ID = primitive.NewObjectID()
	enquiry.CreatedAt = time.Now()
	f.enquiries = append(f.enquiries, *enquiry)
	return enquiry.ID.Hex(), nil
}

func (f *fakeEnquiryRepo) List(ctx context.Context) ([]models.Enquiry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.enquiries, nil
}

func TestCreateEnquirySnapshotsPropertyTitle(t *testing.T) {
	property := models.Property{ID: primitive.NewObjectID(), Title: "Sea View Villa"}
	enquiries := &fakeEnquiryRepo{}
	ec := &EnquiryController{
		enquiries:  enquiries,
		properties: &fakePropertyRepo{properties: []models.Property{property}},
	}

	c, rec := newTestContext(http.MethodPost, "/api/enquiries",
		`{"name":"Asha","phone":"+919900112233","message":"Is it available?","propertyId":"`+property.ID.Hex()+`"}`)

	if err := ec.CreateEnquiry(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(enquiries.enquiries) != 1 {
		t.Fatalf("expected one persisted enquiry, got %d", len(enquiries.enquiries))
	}
	if enquiries.enquiries[0].PropertyTitle != "Sea View Villa" {
		t.Errorf("title must be snapshotted, got %q", enquiries.enquiries[0].PropertyTitle)
	}
}

func TestCreateEnquiryRequiresNameAndPhone(t *testing.T) {
	ec := &EnquiryController{enquiries: &fakeEnquiryRepo{}, properties: &fakePropertyRepo{}}

	c, rec := newTestContext(http.MethodPost, "/api/enquiries", `{"phone":"123"}`)
	if err := ec.CreateEnquiry(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing name must be 400, got %d", rec.Code)
	}

	c, rec = newTestContext(http.MethodPost, "/api/enquiries", `{"name":"Asha"}`)
	if err := ec.CreateEnquiry(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing phone must be 400, got %d", rec.Code)
	}
}

func TestCreateEnquiryUnknownProperty(t *testing.T) {
	ec := &EnquiryController{enquiries: &fakeEnquiryRepo{}, properties: &fakePropertyRepo{}}

	c, rec := newTestContext(http.MethodPost, "/api/enquiries",
		`{"name":"Asha","phone":"123","propertyId":"abc123"}`)
	if err := ec.CreateEnquiry(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("enquiry against a missing property must be 404, got %d", rec.Code)
	}
}

func TestCreateEnquiryWriteError(t *testing.T) {
	property := models.Property{ID: primitive.NewObjectID(), Title: "Villa"}
	ec := &EnquiryController{
		enquiries:  &fakeEnquiryRepo{createErr: &repository.WriteError{Op: "create", Err: errors.New("down")}},
		properties: &fakePropertyRepo{properties: []models.Property{property}},
	}

	c, rec := newTestContext(http.MethodPost, "/api/enquiries",
		`{"name":"Asha","phone":"123","propertyId":"`+property.ID.Hex()+`"}`)
	if err := ec.CreateEnquiry(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("write failure must surface as 500, got %d", rec.Code)
	}
}

func TestListEnquiries(t *testing.T) {
	enquiries := &fakeEnquiryRepo{enquiries: []models.Enquiry{
		{Name: "Asha", PropertyTitle: "Villa"},
	}}
	ec := &EnquiryController{enquiries: enquiries, properties: &fakePropertyRepo{}}

	c, rec := newTestContext(http.MethodGet, "/api/admin/enquiries", "")
	if err := ec.ListEnquiries(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Asha") {
		t.Errorf("list must carry the enquiry: %s", rec.Body.String())
	}
}

func TestListEnquiriesEmpty(t *testing.T) {
	ec := &EnquiryController{enquiries: &fakeEnquiryRepo{}, properties: &fakePropertyRepo{}}

	c, rec := newTestContext(http.MethodGet, "/api/admin/enquiries", "")
	if err := ec.ListEnquiries(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("empty list must serialize as [], got %s", rec.Body.String())
	}
}
