package controllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/solipsisticstratosphere/Fit-Track/services"
)

type UploadController struct {
	images services.ImageStore
}

func NewUploadController(images services.ImageStore) *UploadController {
	return &UploadController{images: images}
}

func (ctl *UploadController) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	data, contentType, ok := readImageFile(c, header)
	if !ok {
		return
	}

	prefix := fmt.Sprintf("profiles/user_%d", currentUserID(c))
	url, key, err := ctl.images.Upload(c.Request.Context(), data, contentType, prefix)
	if err != nil {
		log.Printf("upload error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": url, "publicId": key})
}
