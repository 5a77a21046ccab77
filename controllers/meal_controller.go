package controllers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solipsisticstratosphere/Fit-Track/services"
)

type MealController struct {
	meals  services.MealService
	images services.ImageStore
}

func NewMealController(meals services.MealService, images services.ImageStore) *MealController {
	return &MealController{meals: meals, images: images}
}

func (ctl *MealController) List(c *gin.Context) {
	date, ok := dateQuery(c, "date")
	if !ok {
		return
	}
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}

	limit, ok := limitQuery(c)
	if !ok {
		return
	}

	filter := services.MealFilter{
		Date:  date,
		From:  from,
		To:    to,
		Limit: limit,
	}

	meals, err := ctl.meals.List(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		serviceError(c, err, "Meal")
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// Create accepts a multipart form so the meal photo can ride along with the
// nutrition fields. Empty numeric fields are stored as NULL, never zero.
func (ctl *MealController) Create(c *gin.Context) {
	name := c.PostForm("name")
	dateStr := c.PostForm("date")
	if name == "" || dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and date are required"})
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	calories, protein, carbs, fat, ok := nutritionForm(c)
	if !ok {
		return
	}

	imageURL, ok := ctl.uploadMealImage(c)
	if !ok {
		return
	}

	input := services.MealInput{
		Name:     name,
		Date:     date,
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
		Notes:    optionalString(c.PostForm("notes")),
		ImageURL: imageURL,
	}

	meal, err := ctl.meals.Create(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		serviceError(c, err, "Meal")
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (ctl *MealController) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		serviceError(c, err, "Meal")
		return
	}

	meal, err := ctl.meals.Get(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		serviceError(c, err, "Meal")
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (ctl *MealController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		serviceError(c, err, "Meal")
		return
	}

	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	var date time.Time // zero keeps the stored date
	if dateStr := c.PostForm("date"); dateStr != "" {
		date, err = parseDate(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
			return
		}
	}

	calories, protein, carbs, fat, ok := nutritionForm(c)
	if !ok {
		return
	}

	imageURL, ok := ctl.uploadMealImage(c)
	if !ok {
		return
	}

	input := services.MealInput{
		Name:     name,
		Date:     date,
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
		Notes:    optionalString(c.PostForm("notes")),
		ImageURL: imageURL,
	}

	meal, err := ctl.meals.Update(c.Request.Context(), currentUserID(c), id, input)
	if err != nil {
		serviceError(c, err, "Meal")
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (ctl *MealController) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		serviceError(c, err, "Meal")
		return
	}

	if err := ctl.meals.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		serviceError(c, err, "Meal")
		return
	}
	c.Status(http.StatusNoContent)
}

// DailyTotals sums the day's macros; the date defaults to today.
func (ctl *MealController) DailyTotals(c *gin.Context) {
	day := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := parseDate(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format for 'date'"})
			return
		}
		day = parsed
	}

	totals, err := ctl.meals.DailyTotals(c.Request.Context(), currentUserID(c), day)
	if err != nil {
		serviceError(c, err, "Meal")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// nutritionForm reads the optional macro fields. The bool result is false
// when a field was unparsable and a 400 has been written.
func nutritionForm(c *gin.Context) (calories *int, protein, carbs, fat *float64, ok bool) {
	if calories, ok = formInt(c, "calories"); !ok {
		return
	}
	if protein, ok = formFloat(c, "protein"); !ok {
		return
	}
	if carbs, ok = formFloat(c, "carbs"); !ok {
		return
	}
	fat, ok = formFloat(c, "fat")
	return
}

// uploadMealImage stores an attached image, if any. The bool result is
// false when a response has already been written.
func (ctl *MealController) uploadMealImage(c *gin.Context) (*string, bool) {
	header, err := c.FormFile("image")
	if err != nil {
		return nil, true // no image attached
	}

	data, contentType, ok := readImageFile(c, header)
	if !ok {
		return nil, false
	}

	prefix := fmt.Sprintf("meals/user_%d", currentUserID(c))
	url, _, err := ctl.images.Upload(c.Request.Context(), data, contentType, prefix)
	if err != nil {
		log.Printf("meal image upload error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return nil, false
	}
	return &url, true
}

// readImageFile validates and reads a multipart image. On failure it writes
// the response and reports false.
func readImageFile(c *gin.Context, header *multipart.FileHeader) ([]byte, string, bool) {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be an image"})
		return nil, "", false
	}

	file, err := header.Open()
	if err != nil {
		log.Printf("image read error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("image read error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return nil, "", false
	}
	return data, contentType, true
}
