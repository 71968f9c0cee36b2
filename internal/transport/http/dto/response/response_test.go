package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"success", SuccessResponse(map[string]int{"n": 1}), `{"status":"success","data":{"n":1}}`},
		{"message", MessageResponse("saved"), `{"status":"success","message":"saved"}`},
		{"partial", PartialResponse([]string{"fr"}, "some failed"), `{"status":"partial","data":["fr"],"message":"some failed"}`},
		{"error", ErrorResponseWithDetails("bad", "nope"), `{"status":"error","error":"bad","details":"nope"}`},
		{"catalog", ErrInternal, `{"status":"error","error":"` + ErrInternal.Error + `","details":"` + ErrInternal.Details + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}
