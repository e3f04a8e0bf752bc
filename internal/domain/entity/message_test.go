package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsForwardMessageStatus(t *testing.T) {
	assert.True(t, IsForwardMessageStatus(MessageStatusSent, MessageStatusDelivered))
	assert.True(t, IsForwardMessageStatus(MessageStatusSent, MessageStatusRead))
	assert.True(t, IsForwardMessageStatus(MessageStatusDelivered, MessageStatusRead))

	assert.False(t, IsForwardMessageStatus(MessageStatusRead, MessageStatusDelivered))
	assert.False(t, IsForwardMessageStatus(MessageStatusDelivered, MessageStatusSent))
	assert.False(t, IsForwardMessageStatus(MessageStatusSent, MessageStatusSent))
	assert.False(t, IsForwardMessageStatus(MessageStatusSent, "archived"))
	assert.False(t, IsForwardMessageStatus("", MessageStatusRead))
}
