package verification

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wardro8e/api/internal/domain"
)

type mockVerificationStore struct{ mock.Mock }

func (m *mockVerificationStore) Put(ctx context.Context, v *domain.BrandVerification) error {
	return m.Called(ctx, v).Error(0)
}

func (m *mockVerificationStore) Get(ctx context.Context, brandID string) (*domain.BrandVerification, error) {
	args := m.Called(ctx, brandID)
	if v, _ := args.Get(0).(*domain.BrandVerification); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBrandStore struct{ mock.Mock }

func (m *mockBrandStore) Get(ctx context.Context, brandID string) (*domain.Brand, error) {
	args := m.Called(ctx, brandID)
	if b, _ := args.Get(0).(*domain.Brand); b != nil {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

type fakeObjectStore struct {
	keys    []string
	buckets []string

	content        map[string]string // key -> body served by Download
	downloadBucket string
}

func (f *fakeObjectStore) Upload(_ context.Context, bucket, key string, _ io.Reader, _ string) (string, error) {
	f.buckets = append(f.buckets, bucket)
	f.keys = append(f.keys, key)
	return "s3://" + bucket + "/" + key, nil
}

func (f *fakeObjectStore) Download(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	f.downloadBucket = bucket
	body, ok := f.content[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

type fakeMailer struct {
	to     string
	status string
	err    error
}

func (f *fakeMailer) SendVerificationSubmittedEmail(to, _ string, status string) error {
	if f.err != nil {
		return f.err
	}
	f.to = to
	f.status = status
	return nil
}

func validRequest(action string) domain.SubmitVerificationRequest {
	return domain.SubmitVerificationRequest{
		BusinessType:   "private_limited",
		GSTIN:          "29ABCDE1234F1Z5",
		PANNumber:      "ABCDE1234F",
		ContactName:    "Priya Sharma",
		ContactPhone:   "+919876543210",
		ContactEmail:   "priya@aster.in",
		AddressLine1:   "14 MG Road",
		City:           "Bengaluru",
		State:          "Karnataka",
		Pincode:        "560001",
		ContractAction: action,
	}
}

func proofFile() []FileUpload {
	return []FileUpload{{
		Filename:    "utility-bill.pdf",
		ContentType: "application/pdf",
		Content:     strings.NewReader("pdf bytes"),
	}}
}

func newTestService(verifications *mockVerificationStore, brands *mockBrandStore, objects *fakeObjectStore, m *fakeMailer) Service {
	return NewService(ServiceDeps{
		VerificationRepo:    verifications,
		BrandRepo:           brands,
		ObjectStore:         objects,
		Mailer:              m,
		AddressProofsBucket: "address-proof-docs",
		ContractsBucket:     "contract-docs",
	})
}

func TestSubmit_ESignAwaitsSignature(t *testing.T) {
	verifications := new(mockVerificationStore)
	brands := new(mockBrandStore)
	objects := &fakeObjectStore{}
	m := &fakeMailer{}
	svc := newTestService(verifications, brands, objects, m)

	brands.On("Get", mock.Anything, "brand-1").Return(&domain.Brand{BrandID: "brand-1"}, nil)
	verifications.On("Get", mock.Anything, "brand-1").Return(nil, domain.ErrNotFound)
	verifications.On("Put", mock.Anything, mock.AnythingOfType("*domain.BrandVerification")).Return(nil)

	v, err := svc.Submit(context.Background(), "brand-1", validRequest(domain.ContractActionESign), proofFile(), nil)
	require.NoError(t, err)

	assert.Equal(t, domain.VerificationAwaitingESign, v.Status)
	require.Len(t, v.AddressProofDocuments, 1)
	assert.Equal(t, "utility-bill.pdf", v.AddressProofDocuments[0].OriginalName)
	assert.Empty(t, v.ContractDocuments)

	require.Len(t, objects.keys, 1)
	assert.Equal(t, "address-proof-docs", objects.buckets[0])
	assert.True(t, strings.HasPrefix(objects.keys[0], "brand-1/address-proof/"))
	assert.True(t, strings.HasSuffix(objects.keys[0], ".pdf"))

	assert.Equal(t, "priya@aster.in", m.to)
	assert.Equal(t, domain.VerificationAwaitingESign, m.status)
}

func TestSubmit_ManualSignGoesUnderReview(t *testing.T) {
	verifications := new(mockVerificationStore)
	brands := new(mockBrandStore)
	objects := &fakeObjectStore{}
	svc := newTestService(verifications, brands, objects, &fakeMailer{})

	brands.On("Get", mock.Anything, "brand-1").Return(&domain.Brand{BrandID: "brand-1"}, nil)
	verifications.On("Get", mock.Anything, "brand-1").Return(nil, domain.ErrNotFound)
	verifications.On("Put", mock.Anything, mock.Anything).Return(nil)

	contract := []FileUpload{{
		Filename:    "signed-contract.pdf",
		ContentType: "application/pdf",
		Content:     strings.NewReader("contract bytes"),
	}}
	v, err := svc.Submit(context.Background(), "brand-1", validRequest(domain.ContractActionManualSign), proofFile(), contract)
	require.NoError(t, err)

	assert.Equal(t, domain.VerificationUnderReview, v.Status)
	require.Len(t, v.ContractDocuments, 1)
	assert.Contains(t, objects.buckets, "contract-docs")
}

func TestSubmit_ESignIgnoresContractFiles(t *testing.T) {
	verifications := new(mockVerificationStore)
	brands := new(mockBrandStore)
	objects := &fakeObjectStore{}
	svc := newTestService(verifications, brands, objects, &fakeMailer{})

	brands.On("Get", mock.Anything, "brand-1").Return(&domain.Brand{BrandID: "brand-1"}, nil)
	verifications.On("Get", mock.Anything, "brand-1").Return(nil, domain.ErrNotFound)
	verifications.On("Put", mock.Anything, mock.Anything).Return(nil)

	contract := []FileUpload{{Filename: "draft.pdf", Content: strings.NewReader("x")}}
	v, err := svc.Submit(context.Background(), "brand-1", validRequest(domain.ContractActionESign), proofFile(), contract)
	require.NoError(t, err)

	assert.Empty(t, v.ContractDocuments)
	assert.NotContains(t, objects.buckets, "contract-docs")
}

func TestSubmit_UnknownBrand(t *testing.T) {
	brands := new(mockBrandStore)
	svc := newTestService(new(mockVerificationStore), brands, &fakeObjectStore{}, &fakeMailer{})

	brands.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := svc.Submit(context.Background(), "ghost", validRequest(domain.ContractActionESign), proofFile(), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmit_InvalidForm(t *testing.T) {
	brands := new(mockBrandStore)
	verifications := new(mockVerificationStore)
	objects := &fakeObjectStore{}
	svc := newTestService(verifications, brands, objects, &fakeMailer{})

	brands.On("Get", mock.Anything, "brand-1").Return(&domain.Brand{BrandID: "brand-1"}, nil)

	req := validRequest("fax") // not an accepted signing method
	_, err := svc.Submit(context.Background(), "brand-1", req, proofFile(), nil)
	assert.ErrorIs(t, err, domain.ErrBadRequest)
	assert.Empty(t, objects.keys, "nothing should be uploaded for an invalid form")
}

func TestSubmit_ResubmissionKeepsOriginalCreatedAt(t *testing.T) {
	verifications := new(mockVerificationStore)
	brands := new(mockBrandStore)
	svc := newTestService(verifications, brands, &fakeObjectStore{}, &fakeMailer{})

	firstSubmitted := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	brands.On("Get", mock.Anything, "brand-1").Return(&domain.Brand{BrandID: "brand-1"}, nil)
	verifications.On("Get", mock.Anything, "brand-1").Return(&domain.BrandVerification{
		BrandID:   "brand-1",
		Status:    domain.VerificationRejected,
		CreatedAt: firstSubmitted,
	}, nil)
	verifications.On("Put", mock.Anything, mock.Anything).Return(nil)

	v, err := svc.Submit(context.Background(), "brand-1", validRequest(domain.ContractActionESign), proofFile(), nil)
	require.NoError(t, err)
	assert.Equal(t, firstSubmitted, v.CreatedAt)
	assert.True(t, v.UpdatedAt.After(firstSubmitted))
}

func TestSubmit_EmailFailureDoesNotFailSubmission(t *testing.T) {
	verifications := new(mockVerificationStore)
	brands := new(mockBrandStore)
	m := &fakeMailer{err: io.ErrClosedPipe}
	svc := newTestService(verifications, brands, &fakeObjectStore{}, m)

	brands.On("Get", mock.Anything, "brand-1").Return(&domain.Brand{BrandID: "brand-1"}, nil)
	verifications.On("Get", mock.Anything, "brand-1").Return(nil, domain.ErrNotFound)
	verifications.On("Put", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Submit(context.Background(), "brand-1", validRequest(domain.ContractActionESign), proofFile(), nil)
	assert.NoError(t, err)
}

func TestStatus_ReturnsRecord(t *testing.T) {
	verifications := new(mockVerificationStore)
	brands := new(mockBrandStore)
	svc := newTestService(verifications, brands, &fakeObjectStore{}, &fakeMailer{})

	brands.On("Get", mock.Anything, "brand-1").Return(&domain.Brand{BrandID: "brand-1"}, nil)
	verifications.On("Get", mock.Anything, "brand-1").Return(&domain.BrandVerification{
		BrandID: "brand-1",
		Status:  domain.VerificationUnderReview,
	}, nil)

	v, err := svc.Status(context.Background(), "brand-1")
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationUnderReview, v.Status)
}

func TestDocument_StreamsOwnDocument(t *testing.T) {
	verifications := new(mockVerificationStore)
	brands := new(mockBrandStore)
	objects := &fakeObjectStore{content: map[string]string{
		"brand-1/address-proof/abc.pdf": "pdf-bytes",
	}}
	svc := newTestService(verifications, brands, objects, &fakeMailer{})

	verifications.On("Get", mock.Anything, "brand-1").Return(&domain.BrandVerification{
		BrandID: "brand-1",
		AddressProofDocuments: []domain.UploadedDocument{{
			Type:         "address_proof",
			Key:          "brand-1/address-proof/abc.pdf",
			OriginalName: "lease.pdf",
		}},
	}, nil)

	rc, doc, err := svc.Document(context.Background(), "brand-1", "brand-1/address-proof/abc.pdf")
	require.NoError(t, err)
	defer rc.Close()

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(body))
	assert.Equal(t, "lease.pdf", doc.OriginalName)
	assert.Equal(t, "address-proof-docs", objects.downloadBucket)
}

func TestDocument_ContractComesFromContractBucket(t *testing.T) {
	verifications := new(mockVerificationStore)
	brands := new(mockBrandStore)
	objects := &fakeObjectStore{content: map[string]string{
		"brand-1/contracts/c1.pdf": "signed",
	}}
	svc := newTestService(verifications, brands, objects, &fakeMailer{})

	verifications.On("Get", mock.Anything, "brand-1").Return(&domain.BrandVerification{
		BrandID: "brand-1",
		ContractDocuments: []domain.UploadedDocument{{
			Type:         "contract",
			Key:          "brand-1/contracts/c1.pdf",
			OriginalName: "contract.pdf",
		}},
	}, nil)

	rc, _, err := svc.Document(context.Background(), "brand-1", "brand-1/contracts/c1.pdf")
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, "contract-docs", objects.downloadBucket)
}

func TestDocument_KeyNotInRecord(t *testing.T) {
	verifications := new(mockVerificationStore)
	brands := new(mockBrandStore)
	objects := &fakeObjectStore{content: map[string]string{
		"brand-2/address-proof/other.pdf": "not-yours",
	}}
	svc := newTestService(verifications, brands, objects, &fakeMailer{})

	verifications.On("Get", mock.Anything, "brand-1").Return(&domain.BrandVerification{
		BrandID: "brand-1",
	}, nil)

	_, _, err := svc.Document(context.Background(), "brand-1", "brand-2/address-proof/other.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, objects.downloadBucket, "storage must not be touched for a foreign key")
}

func TestStatus_NoSubmissionYet(t *testing.T) {
	verifications := new(mockVerificationStore)
	brands := new(mockBrandStore)
	svc := newTestService(verifications, brands, &fakeObjectStore{}, &fakeMailer{})

	brands.On("Get", mock.Anything, "brand-1").Return(&domain.Brand{BrandID: "brand-1"}, nil)
	verifications.On("Get", mock.Anything, "brand-1").Return(nil, domain.ErrNotFound)

	_, err := svc.Status(context.Background(), "brand-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
