package services

import (
	"context"
	"testing"

	"lendflow-los/internal/adapters/persistence/models"
	"lendflow-los/internal/adapters/persistence/repositories"
	"lendflow-los/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerFixture() *CustomerService {
	return NewCustomerService(repositories.NewMemoryCustomerRepository())
}

func validCustomerInput() *CreateCustomerInput {
	return &CreateCustomerInput{
		FirstName:  "Ploy",
		LastName:   "Suksawat",
		Email:      "ploy@example.com",
		Phone:      "+66812345678",
		NationalID: "1103700123456",
	}
}

func TestCreateCustomerDefaults(t *testing.T) {
	svc := newCustomerFixture()

	customer, err := svc.Create(context.Background(), validCustomerInput())
	require.NoError(t, err)

	assert.Equal(t, models.CustomerStatusActive, customer.Status)
	assert.Equal(t, models.KYCStatusPending, customer.KYCStatus)
	assert.Nil(t, customer.KYCVerifiedAt)
	assert.NotZero(t, customer.ID)
}

func TestCreateCustomerRequiredFields(t *testing.T) {
	svc := newCustomerFixture()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateCustomerInput)
		field  string
	}{
		{"missing first name", func(in *CreateCustomerInput) { in.FirstName = " " }, "first_name"},
		{"missing last name", func(in *CreateCustomerInput) { in.LastName = "" }, "last_name"},
		{"missing email", func(in *CreateCustomerInput) { in.Email = "" }, "email"},
		{"missing national ID", func(in *CreateCustomerInput) { in.NationalID = "" }, "national_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCustomerInput()
			tt.mutate(input)

			_, err := svc.Create(ctx, input)
			verr, ok := domain.AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCreateCustomerDuplicates(t *testing.T) {
	svc := newCustomerFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, validCustomerInput())
	require.NoError(t, err)

	// Same email, different national ID
	dup := validCustomerInput()
	dup.NationalID = "9999999999999"
	_, err = svc.Create(ctx, dup)
	assert.ErrorIs(t, err, ErrCustomerAlreadyExists)

	// Same national ID, different email
	dup = validCustomerInput()
	dup.Email = "other@example.com"
	_, err = svc.Create(ctx, dup)
	assert.ErrorIs(t, err, ErrCustomerAlreadyExists)
}

func TestUpdateCustomerPatchesFields(t *testing.T) {
	svc := newCustomerFixture()
	ctx := context.Background()

	customer, err := svc.Create(ctx, validCustomerInput())
	require.NoError(t, err)

	newPhone := "+66899999999"
	newStatus := models.CustomerStatusInactive
	updated, err := svc.Update(ctx, customer.ID, &UpdateCustomerInput{
		Phone:  &newPhone,
		Status: &newStatus,
	})
	require.NoError(t, err)

	assert.Equal(t, newPhone, updated.Phone)
	assert.Equal(t, models.CustomerStatusInactive, updated.Status)
	// Untouched fields stay
	assert.Equal(t, "Ploy", updated.FirstName)
}

func TestUpdateCustomerUnknownStatus(t *testing.T) {
	svc := newCustomerFixture()
	ctx := context.Background()

	customer, err := svc.Create(ctx, validCustomerInput())
	require.NoError(t, err)

	bad := "SUSPENDED"
	_, err = svc.Update(ctx, customer.ID, &UpdateCustomerInput{Status: &bad})
	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "status", verr.Field)
}

func TestDeleteCustomer(t *testing.T) {
	svc := newCustomerFixture()
	ctx := context.Background()

	customer, err := svc.Create(ctx, validCustomerInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, customer.ID))
	_, err = svc.GetByID(ctx, customer.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, customer.ID), ErrCustomerNotFound)
}

func TestKYCTransitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []string
		wantErr bool
	}{
		{"pending to in review", []string{models.KYCStatusInReview}, false},
		{"pending straight to verified", []string{models.KYCStatusVerified}, false},
		{"full review cycle", []string{models.KYCStatusInReview, models.KYCStatusVerified}, false},
		{"rejected can be re-reviewed", []string{models.KYCStatusRejected, models.KYCStatusInReview, models.KYCStatusVerified}, false},
		{"verified is terminal", []string{models.KYCStatusVerified, models.KYCStatusInReview}, true},
		{"rejected cannot jump to verified", []string{models.KYCStatusRejected, models.KYCStatusVerified}, true},
		{"no self transition", []string{models.KYCStatusPending}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newCustomerFixture()
			ctx := context.Background()

			customer, err := svc.Create(ctx, validCustomerInput())
			require.NoError(t, err)

			var lastErr error
			for _, status := range tt.path {
				_, lastErr = svc.UpdateKYC(ctx, customer.ID, status)
				if lastErr != nil {
					break
				}
			}

			if tt.wantErr {
				assert.ErrorIs(t, lastErr, ErrInvalidKYCTransition)
			} else {
				assert.NoError(t, lastErr)
			}
		})
	}
}

func TestKYCVerifiedTimestamp(t *testing.T) {
	svc := newCustomerFixture()
	ctx := context.Background()

	customer, err := svc.Create(ctx, validCustomerInput())
	require.NoError(t, err)

	verified, err := svc.UpdateKYC(ctx, customer.ID, models.KYCStatusVerified)
	require.NoError(t, err)
	require.NotNil(t, verified.KYCVerifiedAt)
}

func TestListCustomers(t *testing.T) {
	svc := newCustomerFixture()
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		input := validCustomerInput()
		input.Email = email
		input.NationalID = "NID-" + email
		_, err := svc.Create(ctx, input)
		require.NoError(t, err)
	}

	customers, total, err := svc.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, customers, 2)
}
