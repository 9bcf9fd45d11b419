package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostTypeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		in      string
		want    PostType
		wantErr bool
	}{
		{in: `{"post_type":"Top"}`, want: PostTypeTop},
		{in: `{"post_type":"Reply"}`, want: PostTypeReply},
		{in: `{"post_type":null}`, want: ""},
		{in: `{"post_type":""}`, want: ""},
		{in: `{}`, want: ""},
		{in: `{"post_type":"Pinned"}`, wantErr: true},
		{in: `{"post_type":3}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var p Post
			err := json.Unmarshal([]byte(tt.in), &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Type)
		})
	}
}
