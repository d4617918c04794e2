package http

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wanjala/cdf-tracker/internal/model"
)

func TestUploaderName(t *testing.T) {
	moderator := model.Principal{UserID: 7, Username: "wanjiku", Role: model.RoleModerator}

	assert.Equal(t, "citizen", uploaderName("citizen", moderator, true))
	assert.Equal(t, "wanjiku", uploaderName("", moderator, true))
	assert.Equal(t, "admin", uploaderName("", model.Principal{}, false))
}
