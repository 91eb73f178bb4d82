package domain

import "time"

// Brand-verification statuses. The initial status derives from the chosen
// contract signing method; review transitions are applied by an external
// ops process.
const (
	VerificationAwaitingESign = "awaiting_esign"
	VerificationUnderReview   = "under_review"
	VerificationApproved      = "approved"
	VerificationRejected      = "rejected"
)

// Contract signing methods.
const (
	ContractActionESign      = "e_sign"
	ContractActionManualSign = "manual_sign"
)

// UploadedDocument records one file persisted to object storage.
type UploadedDocument struct {
	Type         string    `json:"type" dynamodbav:"type"` // "address_proof" | "contract"
	Key          string    `json:"url" dynamodbav:"key"`
	OriginalName string    `json:"original_name" dynamodbav:"original_name"`
	UploadedAt   time.Time `json:"uploaded_at" dynamodbav:"uploaded_at"`
}

// SubmissionMetadata captures request context at submission time.
type SubmissionMetadata struct {
	UserAgent   string    `json:"user_agent" dynamodbav:"user_agent"`
	SubmittedAt time.Time `json:"submitted_at" dynamodbav:"submitted_at"`
}

// BrandVerification is the compliance record gating a brand's ability to
// list products. Upserted keyed by brand id; one record per brand.
type BrandVerification struct {
	BrandID               string             `json:"brand_id" dynamodbav:"brand_id"`
	Status                string             `json:"status" dynamodbav:"status"`
	BusinessType          string             `json:"business_type" dynamodbav:"business_type"`
	GSTIN                 string             `json:"gstin" dynamodbav:"gstin"`
	PANNumber             string             `json:"pan_number" dynamodbav:"pan_number"`
	ContactName           string             `json:"contact_name" dynamodbav:"contact_name"`
	ContactPhone          string             `json:"contact_phone" dynamodbav:"contact_phone"`
	ContactEmail          string             `json:"contact_email" dynamodbav:"contact_email"`
	AddressLine1          string             `json:"address_line1" dynamodbav:"address_line1"`
	AddressLine2          string             `json:"address_line2,omitempty" dynamodbav:"address_line2"`
	City                  string             `json:"city" dynamodbav:"city"`
	State                 string             `json:"state" dynamodbav:"state"`
	Pincode               string             `json:"pincode" dynamodbav:"pincode"`
	BankName              string             `json:"bank_name,omitempty" dynamodbav:"bank_name"`
	AccountHolderName     string             `json:"account_holder_name,omitempty" dynamodbav:"account_holder_name"`
	AccountNumber         string             `json:"account_number,omitempty" dynamodbav:"account_number"`
	IFSCCode              string             `json:"ifsc_code,omitempty" dynamodbav:"ifsc_code"`
	WebsiteURL            string             `json:"website_url,omitempty" dynamodbav:"website_url"`
	InstagramHandle       string             `json:"instagram_handle,omitempty" dynamodbav:"instagram_handle"`
	ContractAction        string             `json:"contract_document_action" dynamodbav:"contract_document_action"`
	AddressProofDocuments []UploadedDocument `json:"address_proof_documents,omitempty" dynamodbav:"address_proof_documents"`
	ContractDocuments     []UploadedDocument `json:"contract_documents,omitempty" dynamodbav:"contract_documents"`
	RejectionReason       string             `json:"rejection_reason,omitempty" dynamodbav:"rejection_reason"`
	UserIP                string             `json:"user_ip,omitempty" dynamodbav:"user_ip"`
	Metadata              SubmissionMetadata `json:"submission_metadata" dynamodbav:"submission_metadata"`
	CreatedAt             time.Time          `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at" dynamodbav:"updated_at"`
}

// SubmitVerificationRequest is the typed form of the multipart submission,
// validated before any upload or write happens.
type SubmitVerificationRequest struct {
	BusinessType      string `validate:"required"`
	GSTIN             string `validate:"required"`
	PANNumber         string `validate:"required"`
	ContactName       string `validate:"required"`
	ContactPhone      string `validate:"required"`
	ContactEmail      string `validate:"required,email"`
	AddressLine1      string `validate:"required"`
	AddressLine2      string
	City              string `validate:"required"`
	State             string `validate:"required"`
	Pincode           string `validate:"required"`
	BankName          string
	AccountHolderName string
	AccountNumber     string
	IFSCCode          string
	WebsiteURL        string
	InstagramHandle   string
	ContractAction    string `validate:"required,oneof=e_sign manual_sign"`
	UserIP            string
	UserAgent         string
}
