package shared

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  *string  `json:"name"  validate:"required"`
	Items []string `json:"items" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid json", body: `{"name": "test", "items": []}`},
		{name: "trailing comma", body: `{"name": "test",}`, wantErr: true},
		{name: "empty body", body: "", wantErr: true},
		{name: "unknown field", body: `{"name": "test", "extra": 1}`, wantErr: true},
		{name: "trailing data", body: `{"name": "test"} {"name": "again"}`, wantErr: true},
		{name: "trailing whitespace is fine", body: "{\"name\": \"test\"}\n  "},
		{name: "wrong type", body: `{"name": 42}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var req sampleRequest
			err := DecodeJSON(w, r, &req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedBody)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	body := `{"name": "` + strings.Repeat("x", MaxBodyBytes) + `"}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))

	var req sampleRequest
	err := DecodeJSON(httptest.NewRecorder(), r, &req)
	assert.ErrorIs(t, err, ErrMalformedBody)
}

func TestReadBodyThenDecode(t *testing.T) {
	r := httptest.NewRequest("PUT", "/", strings.NewReader(`["alice","bob"]`))
	data, err := ReadBody(httptest.NewRecorder(), r)
	require.NoError(t, err)

	var ids []string
	require.NoError(t, DecodeJSONBytes(data, &ids))
	assert.Equal(t, []string{"alice", "bob"}, ids)

	assert.ErrorIs(t, DecodeJSONBytes([]byte(`["a"] ["b"]`), &ids), ErrMalformedBody)
	assert.ErrorIs(t, DecodeJSONBytes([]byte(``), &ids), ErrMalformedBody)
}

func TestReadBody_TooLarge(t *testing.T) {
	body := strings.Repeat("x", MaxBodyBytes+1)
	r := httptest.NewRequest("PUT", "/", strings.NewReader(body))

	_, err := ReadBody(httptest.NewRecorder(), r)
	assert.ErrorIs(t, err, ErrMalformedBody)
}

func TestValidateRequest(t *testing.T) {
	name := ""

	t.Run("empty values pass required", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(&sampleRequest{Name: &name, Items: []string{}}))
	})

	t.Run("missing field reports json name", func(t *testing.T) {
		err := ValidateRequest(&sampleRequest{Items: []string{}})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "name", verrs[0].Field())
		assert.Equal(t, "required", verrs[0].Tag())
	})

	t.Run("null slice fails", func(t *testing.T) {
		err := ValidateRequest(&sampleRequest{Name: &name})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Equal(t, "items", verrs[0].Field())
	})
}
