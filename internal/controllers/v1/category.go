package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hearthbudget/backend/internal/httputil"
	"github.com/hearthbudget/backend/internal/models"
)

type CategoryListResponse struct {
	Data []models.Category `json:"data"`
}

type CategoryResponse struct {
	Data models.Category `json:"data"`
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

// CreateCategory creates a new category.
func CreateCategory(c *gin.Context) {
	var data models.Category

	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	if err := models.DB.Create(&data).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: data})
}

// GetCategories returns all categories that are not deleted.
func GetCategories(c *gin.Context) {
	var categories []models.Category

	err := models.DB.Where("is_deleted = ?", false).Order("name ASC").Find(&categories).Error
	if err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}

// GetCategory returns a category by its ID.
func GetCategory(c *gin.Context) {
	category, err := getCategory(c)
	if err != nil {
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: category})
}

// UpdateCategory updates an existing category. Only values to be updated
// need to be specified.
func UpdateCategory(c *gin.Context) {
	category, err := getCategory(c)
	if err != nil {
		return
	}

	var data models.Category
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	// Values that are validated on save keep their stored value when
	// they are not part of the request
	if data.Type == "" {
		data.Type = category.Type
	}

	if err := models.DB.Model(&category).Updates(data).Error; err != nil {
		httputil.Handler(c, err)
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: category})
}

// DeleteCategory marks a category as deleted. Transactions referencing it
// stay intact, so the row is kept.
func DeleteCategory(c *gin.Context) {
	category, err := getCategory(c)
	if err != nil {
		return
	}

	err = models.DB.Model(&category).Update("is_deleted", true).Error
	if err != nil {
		httputil.Handler(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
