package cache

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProductKeys(t *testing.T) {
	id := uuid.MustParse("6f1c1b0e-2d4a-4b8e-9b52-2f6a3c8d7e10")

	assert.Equal(t, "product:6f1c1b0e-2d4a-4b8e-9b52-2f6a3c8d7e10:public", ProductKey(id))
	assert.Equal(t, "product:slug:linen-shirt:public", ProductSlugKey("linen-shirt"))
}

func TestListKey(t *testing.T) {
	assert.Equal(t, "products:list:featured", ListKey("featured", ""))
	assert.Equal(t, "products:list:public:ab12", ListKey("public", "ab12"))
}

func TestProductCacheKeysSet(t *testing.T) {
	c := NewRedisCache(nil, 0, 0)
	id := uuid.New()

	assert.Equal(t, "product:"+id.String()+":cache_keys", c.productCacheKeysSet(id))
}
