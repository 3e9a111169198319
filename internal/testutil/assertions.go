package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/akis/champion-vault/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// AssertJSONResponse decodes JSON response into v and verifies success
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertBalance verifies a user's stored points balance
func AssertBalance(t *testing.T, db *gorm.DB, userID uuid.UUID, expected int) {
	t.Helper()

	var user domain.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error, "failed to load user")
	assert.Equal(t, expected, user.Points, "unexpected points balance")
}

// AssertUnlocked verifies an entitlement row exists for the item
func AssertUnlocked(t *testing.T, db *gorm.DB, userID uuid.UUID, itemType domain.ItemType, itemID uint) {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&domain.UserUnlock{}).
		Where("user_id = ? AND item_type = ? AND item_id = ?", userID, itemType, itemID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "expected exactly one unlock row for %s %d", itemType, itemID)
}

// AssertNotUnlocked verifies no entitlement row exists for the item
func AssertNotUnlocked(t *testing.T, db *gorm.DB, userID uuid.UUID, itemType domain.ItemType, itemID uint) {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&domain.UserUnlock{}).
		Where("user_id = ? AND item_type = ? AND item_id = ?", userID, itemType, itemID).
		Count(&count).Error)
	assert.Equal(t, int64(0), count, "expected no unlock row for %s %d", itemType, itemID)
}

// RequireNoError fails immediately if err is not nil
func RequireNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}

// RequireEqual fails immediately if expected != actual
func RequireEqual(t *testing.T, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	require.Equal(t, expected, actual, msgAndArgs...)
}

// AssertEqual checks if expected == actual
func AssertEqual(t *testing.T, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, expected, actual, msgAndArgs...)
}

// AssertNotNil checks if object is not nil
func AssertNotNil(t *testing.T, object interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	assert.NotNil(t, object, msgAndArgs...)
}

// AssertNil checks if object is nil
func AssertNil(t *testing.T, object interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Nil(t, object, msgAndArgs...)
}

// AssertTrue checks if value is true
func AssertTrue(t *testing.T, value bool, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, value, msgAndArgs...)
}

// AssertFalse checks if value is false
func AssertFalse(t *testing.T, value bool, msgAndArgs ...interface{}) {
	t.Helper()
	assert.False(t, value, msgAndArgs...)
}

// AssertLen checks if object has expected length
func AssertLen(t *testing.T, object interface{}, length int, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Len(t, object, length, msgAndArgs...)
}
