package models_test

import (
	"testing"

	"roadwatch/backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestComplaintBeforeCreate_GeneratesUUID verifies that the BeforeCreate hook assigns a valid UUID.
func TestComplaintBeforeCreate_GeneratesUUID(t *testing.T) {
	// Arrange
	complaint := &models.Complaint{
		VehicleNo: "KA01AB1234",
		Status:    models.StatusOpen,
	}

	assert.Empty(t, complaint.ComplaintID, "ComplaintID should be empty before BeforeCreate")

	// Act - Call the hook directly (GORM would call this automatically)
	err := complaint.BeforeCreate(nil) // nil *gorm.DB is acceptable for this hook

	// Assert
	assert.NoError(t, err, "BeforeCreate should not return an error")
	assert.NotEmpty(t, complaint.ComplaintID, "ComplaintID must be populated after BeforeCreate")

	parsedUUID, parseErr := uuid.Parse(complaint.ComplaintID)
	assert.NoError(t, parseErr, "ComplaintID must be a valid UUID string")
	assert.NotEqual(t, uuid.Nil, parsedUUID)
}

// TestComplaintBeforeCreate_PreservesExistingID verifies that the hook doesn't overwrite an existing ID.
func TestComplaintBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	complaint := &models.Complaint{
		ComplaintID: existingID,
		VehicleNo:   "MH12CD5678",
	}

	err := complaint.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, complaint.ComplaintID, "BeforeCreate should preserve existing ID")
}

// TestComplaintBeforeCreate_UniqueIDs verifies that distinct complaints get distinct IDs.
func TestComplaintBeforeCreate_UniqueIDs(t *testing.T) {
	generatedIDs := make(map[string]bool)

	for i := 0; i < 10; i++ {
		complaint := &models.Complaint{VehicleNo: "DL05EF9012"}
		err := complaint.BeforeCreate(nil)
		assert.NoError(t, err)

		assert.NotContains(t, generatedIDs, complaint.ComplaintID, "Each complaint should get a unique ID")
		generatedIDs[complaint.ComplaintID] = true
	}
}

// TestNormalizeStatus covers the full status enumeration plus rejections.
func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"Lowercase open", "open", models.StatusOpen, true},
		{"Uppercase hold", "HOLD", models.StatusHold, true},
		{"Mixed case rejected", "ReJeCtEd", models.StatusRejected, true},
		{"Completed with whitespace", "  completed ", models.StatusCompleted, true},
		{"Unknown status", "archived", "", false},
		{"Empty string", "", "", false},
		{"Near miss", "opened", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := models.NormalizeStatus(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, status)
		})
	}
}
