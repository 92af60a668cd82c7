package middleware

import (
	"github.com/ariebrainware/colposcopy-api/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	dbContextKey      = "db"
	storageContextKey = "storage"
)

// DatabaseMiddleware makes db available to handlers through GetDB.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbContextKey, db)
		c.Next()
	}
}

// GetDB returns the request's database handle, or nil when none was injected.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(dbContextKey)
	if !ok {
		return nil
	}
	db, _ := v.(*gorm.DB)
	return db
}

// StorageMiddleware makes the upload store available to handlers through GetStorage.
func StorageMiddleware(s storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(storageContextKey, s)
		c.Next()
	}
}

// GetStorage returns the request's upload store, or nil when none was injected.
func GetStorage(c *gin.Context) storage.Store {
	v, ok := c.Get(storageContextKey)
	if !ok {
		return nil
	}
	s, _ := v.(storage.Store)
	return s
}
