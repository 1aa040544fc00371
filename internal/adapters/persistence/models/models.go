package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User roles
const (
	RoleAdmin   = "ADMIN"
	RoleOfficer = "OFFICER"
	RoleUser    = "USER"
)

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	FullName  string         `gorm:"size:100" json:"full_name"`
	Role      string         `gorm:"size:20;default:'USER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Customer Tables
// ============================================================

// Customer statuses
const (
	CustomerStatusActive      = "ACTIVE"
	CustomerStatusInactive    = "INACTIVE"
	CustomerStatusBlacklisted = "BLACKLISTED"
)

// KYC statuses
const (
	KYCStatusPending  = "PENDING"
	KYCStatusInReview = "IN_REVIEW"
	KYCStatusVerified = "VERIFIED"
	KYCStatusRejected = "REJECTED"
)

// Customer represents customers table
type Customer struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	FirstName     string         `gorm:"size:100;not null" json:"first_name"`
	LastName      string         `gorm:"size:100;not null" json:"last_name"`
	Email         string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Phone         string         `gorm:"size:30" json:"phone"`
	NationalID    string         `gorm:"uniqueIndex;size:30;not null" json:"national_id"`
	Status        string         `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	KYCStatus     string         `gorm:"size:20;not null;default:'PENDING';index" json:"kyc_status"`
	KYCVerifiedAt *time.Time     `json:"kyc_verified_at"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Customer) TableName() string {
	return "customers"
}

func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// CustomerResponse DTO
type CustomerResponse struct {
	ID            uint       `json:"id"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	NationalID    string     `json:"national_id"`
	Status        string     `json:"status"`
	KYCStatus     string     `json:"kyc_status"`
	KYCVerifiedAt *time.Time `json:"kyc_verified_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (c *Customer) ToResponse() *CustomerResponse {
	return &CustomerResponse{
		ID:            c.ID,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Email:         c.Email,
		Phone:         c.Phone,
		NationalID:    c.NationalID,
		Status:        c.Status,
		KYCStatus:     c.KYCStatus,
		KYCVerifiedAt: c.KYCVerifiedAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ============================================================
// Loan Application Tables
// ============================================================

// Application statuses
const (
	StatusDraft       = "DRAFT"
	StatusSubmitted   = "SUBMITTED"
	StatusUnderReview = "UNDER_REVIEW"
	StatusApproved    = "APPROVED"
	StatusRejected    = "REJECTED"
)

// Loan types
const (
	LoanTypePersonal = "PERSONAL"
	LoanTypeAuto     = "AUTO"
	LoanTypeMortgage = "MORTGAGE"
	LoanTypeBusiness = "BUSINESS"
)

// LoanApplication represents loan_applications table
type LoanApplication struct {
	ID                  uint                `gorm:"primaryKey" json:"id"`
	ApplicationNumber   string              `gorm:"size:30;uniqueIndex;not null" json:"application_number"`
	CustomerID          uint                `gorm:"not null;index" json:"customer_id"`
	LoanType            string              `gorm:"size:20;not null;index" json:"loan_type"`
	RequestedAmount     decimal.Decimal     `gorm:"type:decimal(15,2);not null" json:"requested_amount"`
	RequestedTermMonths int                 `gorm:"not null" json:"requested_term_months"`
	Purpose             string              `gorm:"type:text" json:"purpose"`
	Status              string              `gorm:"size:20;not null;index" json:"status"`
	ApprovedAmount      decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"approved_amount"`
	ApprovedTermMonths  *int                `json:"approved_term_months"`
	ApprovedRate        decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"approved_rate"`
	DecisionComment     string              `gorm:"type:text" json:"decision_comment"`
	DecidedBy           *uint               `json:"decided_by"`
	DecidedAt           *time.Time          `json:"decided_at"`
	SubmittedAt         *time.Time          `json:"submitted_at"`
	CreatedAt           time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relations
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Decider  *User     `gorm:"foreignKey:DecidedBy" json:"decider,omitempty"`
}

func (LoanApplication) TableName() string {
	return "loan_applications"
}

// LoanApplicationResponse DTO
type LoanApplicationResponse struct {
	ID                  uint                `json:"id"`
	ApplicationNumber   string              `json:"application_number"`
	CustomerID          uint                `json:"customer_id"`
	CustomerName        string              `json:"customer_name,omitempty"`
	LoanType            string              `json:"loan_type"`
	RequestedAmount     decimal.Decimal     `json:"requested_amount"`
	RequestedTermMonths int                 `json:"requested_term_months"`
	Purpose             string              `json:"purpose,omitempty"`
	Status              string              `json:"status"`
	ApprovedAmount      decimal.NullDecimal `json:"approved_amount,omitempty"`
	ApprovedTermMonths  *int                `json:"approved_term_months,omitempty"`
	ApprovedRate        decimal.NullDecimal `json:"approved_rate,omitempty"`
	DecisionComment     string              `json:"decision_comment,omitempty"`
	DecidedAt           *time.Time          `json:"decided_at,omitempty"`
	SubmittedAt         *time.Time          `json:"submitted_at,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

func (a *LoanApplication) ToResponse() *LoanApplicationResponse {
	resp := &LoanApplicationResponse{
		ID:                  a.ID,
		ApplicationNumber:   a.ApplicationNumber,
		CustomerID:          a.CustomerID,
		LoanType:            a.LoanType,
		RequestedAmount:     a.RequestedAmount,
		RequestedTermMonths: a.RequestedTermMonths,
		Purpose:             a.Purpose,
		Status:              a.Status,
		ApprovedAmount:      a.ApprovedAmount,
		ApprovedTermMonths:  a.ApprovedTermMonths,
		ApprovedRate:        a.ApprovedRate,
		DecisionComment:     a.DecisionComment,
		DecidedAt:           a.DecidedAt,
		SubmittedAt:         a.SubmittedAt,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}

	if a.Customer != nil {
		resp.CustomerName = a.Customer.FirstName + " " + a.Customer.LastName
	}

	return resp
}

// StatusHistory represents application status transitions (audit trail)
type StatusHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ApplicationID uint      `gorm:"not null;index" json:"application_id"`
	FromStatus    *string   `gorm:"size:20" json:"from_status"`
	ToStatus      string    `gorm:"size:20;not null" json:"to_status"`
	Comment       string    `gorm:"type:text" json:"comment"`
	PerformedBy   uint      `json:"performed_by"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Application *LoanApplication `gorm:"foreignKey:ApplicationID" json:"-"`
	Performer   *User            `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (StatusHistory) TableName() string {
	return "status_histories"
}

// StatusHistoryResponse DTO
type StatusHistoryResponse struct {
	ID            uint      `json:"id"`
	ApplicationID uint      `json:"application_id"`
	FromStatus    *string   `json:"from_status"`
	ToStatus      string    `json:"to_status"`
	Comment       string    `json:"comment,omitempty"`
	PerformedBy   uint      `json:"performed_by"`
	PerformerName string    `json:"performer_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (h *StatusHistory) ToResponse() *StatusHistoryResponse {
	resp := &StatusHistoryResponse{
		ID:            h.ID,
		ApplicationID: h.ApplicationID,
		FromStatus:    h.FromStatus,
		ToStatus:      h.ToStatus,
		Comment:       h.Comment,
		PerformedBy:   h.PerformedBy,
		CreatedAt:     h.CreatedAt,
	}

	if h.Performer != nil {
		resp.PerformerName = h.Performer.Username
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&Customer{},
		&LoanApplication{},
		&StatusHistory{},
	)
}
