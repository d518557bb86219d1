package fieldmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMapping = Mapping{
	{Key: "name", Column: "full_name", Rule: TrimmedString},
	{Key: "fullName", Column: "full_name", Rule: TrimmedString},
	{Key: "status", Column: "status", Rule: Enum("pending", "approved")},
	{Key: "balance", Column: "balance", Rule: FloatOrZero},
	{Key: "adminId", Column: "admin_id", Rule: IntOrNil},
	{Key: "active", Column: "is_active", Rule: Bool},
	{Key: "tags", Column: "tags", Rule: StringList},
	{Key: "note", Column: "note"},
}

func TestApplyIgnoresUnknownKeys(t *testing.T) {
	assignments, err := testMapping.Apply(map[string]any{
		"note":       "hello",
		"irrelevant": "ignored",
		"id":         42,
	})
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "note", assignments[0].Column)
	assert.Equal(t, "hello", assignments[0].Value)
}

func TestApplyEmptyPayload(t *testing.T) {
	_, err := testMapping.Apply(map[string]any{})
	assert.ErrorIs(t, err, ErrNoUpdatableFields)

	_, err = testMapping.Apply(map[string]any{"unknown": 1})
	assert.ErrorIs(t, err, ErrNoUpdatableFields)
}

func TestApplyFieldErrorNamesKey(t *testing.T) {
	_, err := testMapping.Apply(map[string]any{"status": "bogus"})
	require.Error(t, err)

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "status", fieldErr.Field)
	assert.Contains(t, fieldErr.Error(), "status")
}

func TestApplyAliasLaterWins(t *testing.T) {
	assignments, err := testMapping.Apply(map[string]any{
		"name":     "  Первый  ",
		"fullName": "Второй",
	})
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	cols := Columns(assignments)
	assert.Equal(t, "Второй", cols["full_name"])
}

func TestApplyStopsAtFirstInvalidField(t *testing.T) {
	// Validation failure discards the whole payload, even valid fields.
	_, err := testMapping.Apply(map[string]any{
		"note":    "valid",
		"balance": "not a number",
	})
	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "balance", fieldErr.Field)
}

func TestHasAndValue(t *testing.T) {
	assignments, err := testMapping.Apply(map[string]any{"active": true, "note": "x"})
	require.NoError(t, err)

	assert.True(t, Has(assignments, "is_active"))
	assert.False(t, Has(assignments, "balance"))

	v, ok := Value(assignments, "is_active")
	require.True(t, ok)
	assert.Equal(t, true, v)
}

func TestBoolRule(t *testing.T) {
	truthy := []any{true, float64(1), "1", "true", "YES", "on"}
	for _, v := range truthy {
		got, err := Bool(v)
		require.NoError(t, err, "value %v", v)
		assert.Equal(t, true, got, "value %v", v)
	}

	falsy := []any{false, float64(0), "0", "false", "no", "off", "", nil}
	for _, v := range falsy {
		got, err := Bool(v)
		require.NoError(t, err, "value %v", v)
		assert.Equal(t, false, got, "value %v", v)
	}

	_, err := Bool("maybe")
	assert.Error(t, err)
	_, err = Bool([]any{1})
	assert.Error(t, err)
}

func TestStringListRule(t *testing.T) {
	got, err := StringList([]any{"орехи", "молоко"})
	require.NoError(t, err)
	assert.Equal(t, `["орехи","молоко"]`, got)

	// Legacy comma-separated input normalizes to the JSON form.
	got, err = StringList("орехи, молоко")
	require.NoError(t, err)
	assert.Equal(t, `["орехи","молоко"]`, got)

	// A JSON array string passes through re-encoded.
	got, err = StringList(`["a","b"]`)
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, got)

	got, err = StringList(nil)
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)

	_, err = StringList(42)
	assert.Error(t, err)
}

func TestIntOrNilRule(t *testing.T) {
	got, err := IntOrNil(float64(7))
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	got, err = IntOrNil(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = IntOrNil("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = IntOrNil("seven")
	assert.Error(t, err)
}

func TestFloatOrZeroRule(t *testing.T) {
	got, err := FloatOrZero(nil)
	require.NoError(t, err)
	assert.Equal(t, float64(0), got)

	got, err = FloatOrZero("12.5")
	require.NoError(t, err)
	assert.Equal(t, 12.5, got)
}

func TestPayloadAliasChain(t *testing.T) {
	p := Payload{
		"dishId":  nil,
		"menuId":  "",
		"menu_id": float64(3),
		"name":    "  Борщ  ",
	}

	// nil and empty-string values are skipped on the way to the first real
	// one.
	id, ok, err := p.Int("dishId", "menuId", "menu_id")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, id)

	assert.Equal(t, "Борщ", p.String("name"))
	assert.Equal(t, "", p.String("missing"))

	_, ok, err = p.Float("absent")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, p.Has("menuId"))
	assert.False(t, p.Has("nothing"))
}
