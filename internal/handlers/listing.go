package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/khaynem/WasteWise-Backend/internal/database"
	"github.com/khaynem/WasteWise-Backend/internal/models"
	"github.com/khaynem/WasteWise-Backend/internal/services"
	"github.com/khaynem/WasteWise-Backend/pkg/logger"
)

// uploadFormImages pushes every file under the named multipart field to the
// image host and returns their URLs.
func uploadFormImages(c *gin.Context, field, folder string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}
	if services.ImageHost == nil {
		return nil, errUploadsDisabled
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		url, err := services.ImageHost.UploadImage(c.Request.Context(), f, folder)
		f.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func CreateListing(c *gin.Context) {
	userID := c.GetString("userId")
	claims := claimsFrom(c)

	price, _ := strconv.ParseFloat(c.PostForm("price"), 64)

	imageURLs, err := uploadFormImages(c, "images", "listings")
	if errors.Is(err, errUploadsDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are temporarily unavailable"})
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("Listing image upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading images"})
		return
	}

	sellerName := "User"
	if claims != nil {
		sellerName = claims.Username
	}

	listing := models.Listing{
		UserID:        userID,
		SellerName:    sellerName,
		Title:         c.PostForm("title"),
		Price:         price,
		Category:      c.PostForm("category"),
		ContactNumber: c.PostForm("contactNumber"),
		Location:      c.PostForm("location"),
		Description:   c.PostForm("description"),
		ImageLinks:    imageURLs,
	}

	if err := database.DB.Create(&listing).Error; err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, listing)
}

func GetAllListings(c *gin.Context) {
	var listings []models.Listing
	if err := database.DB.Order("created_at desc").Find(&listings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, listings)
}

func GetListingByID(c *gin.Context) {
	var listing models.Listing
	if err := database.DB.First(&listing, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

func UpdateListing(c *gin.Context) {
	userID := c.GetString("userId")

	var listing models.Listing
	if err := database.DB.First(&listing, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
		return
	}
	if listing.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to edit this listing"})
		return
	}

	if title := c.PostForm("title"); title != "" {
		listing.Title = title
	}
	if rawPrice := c.PostForm("price"); rawPrice != "" {
		if price, err := strconv.ParseFloat(rawPrice, 64); err == nil {
			listing.Price = price
		}
	}
	if category := c.PostForm("category"); category != "" {
		listing.Category = category
	}
	if contact := c.PostForm("contactNumber"); contact != "" {
		listing.ContactNumber = contact
	}
	if location := c.PostForm("location"); location != "" {
		listing.Location = location
	}
	if description := c.PostForm("description"); description != "" {
		listing.Description = description
	}

	imageURLs, err := uploadFormImages(c, "images", "listings")
	if errors.Is(err, errUploadsDisabled) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Image uploads are temporarily unavailable"})
		return
	}
	if err != nil {
		logger.Error().Err(err).Msg("Listing image upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading images"})
		return
	}
	oldImages := listing.ImageLinks
	if len(imageURLs) > 0 {
		listing.ImageLinks = imageURLs
	}

	if err := database.DB.Save(&listing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating listing"})
		return
	}

	if len(imageURLs) > 0 {
		for _, old := range oldImages {
			services.RemoveHostedImage(c.Request.Context(), old)
		}
	}
	c.JSON(http.StatusOK, listing)
}

func DeleteListing(c *gin.Context) {
	userID := c.GetString("userId")
	listingID := c.Param("id")

	var listing models.Listing
	if err := database.DB.First(&listing, "id = ?", listingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Listing not found"})
		return
	}
	if listing.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized to delete this listing"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", listingID).Delete(&models.ListingComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", listingID).Delete(&models.ListingMetric{}).Error; err != nil {
			return err
		}
		return tx.Delete(&listing).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting listing"})
		return
	}

	for _, img := range listing.ImageLinks {
		services.RemoveHostedImage(c.Request.Context(), img)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing deleted"})
}

type listingMetricView struct {
	Favorites int  `json:"favorites"`
	Liked     bool `json:"liked"`
}

func metricView(metric *models.ListingMetric, userID string) listingMetricView {
	view := listingMetricView{}
	if metric == nil {
		return view
	}
	view.Favorites = metric.Favorites
	if userID != "" {
		for _, uid := range metric.LikedBy {
			if uid == userID {
				view.Liked = true
				break
			}
		}
	}
	return view
}

func GetListingMetrics(c *gin.Context) {
	userID := c.GetString("userId")

	var metric models.ListingMetric
	err := database.DB.Where("listing_id = ?", c.Param("id")).First(&metric).Error
	if err != nil {
		c.JSON(http.StatusOK, listingMetricView{})
		return
	}
	c.JSON(http.StatusOK, metricView(&metric, userID))
}

func GetListingMetricsBulk(c *gin.Context) {
	userID := c.GetString("userId")

	raw := strings.TrimSpace(c.Query("ids"))
	if raw == "" {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	ids := make([]string, 0)
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	var metrics []models.ListingMetric
	if err := database.DB.Where("listing_id IN ?", ids).Find(&metrics).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch metrics"})
		return
	}

	byListing := make(map[string]*models.ListingMetric, len(metrics))
	for i := range metrics {
		byListing[metrics[i].ListingID] = &metrics[i]
	}

	out := make(map[string]listingMetricView, len(ids))
	for _, id := range ids {
		out[id] = metricView(byListing[id], userID)
	}
	c.JSON(http.StatusOK, out)
}

func ToggleLikeListing(c *gin.Context) {
	userID := c.GetString("userId")
	listingID := c.Param("id")

	var listing models.Listing
	if err := database.DB.Select("id").First(&listing, "id = ?", listingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	var view listingMetricView
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		metric := models.ListingMetric{ListingID: listingID, LikedBy: []string{}}
		if err := tx.Where("listing_id = ?", listingID).FirstOrCreate(&metric).Error; err != nil {
			return err
		}

		liked := false
		kept := metric.LikedBy[:0]
		for _, uid := range metric.LikedBy {
			if uid == userID {
				liked = true
				continue
			}
			kept = append(kept, uid)
		}

		if liked {
			metric.LikedBy = kept
			if metric.Favorites > 0 {
				metric.Favorites--
			}
			view = listingMetricView{Favorites: metric.Favorites, Liked: false}
		} else {
			metric.LikedBy = append(metric.LikedBy, userID)
			metric.Favorites++
			view = listingMetricView{Favorites: metric.Favorites, Liked: true}
		}

		return tx.Save(&metric).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle like"})
		return
	}

	c.JSON(http.StatusOK, view)
}

type AddCommentInput struct {
	Comment string `json:"comment" binding:"required"`
}

func AddCommentToListing(c *gin.Context) {
	userID := c.GetString("userId")
	claims := claimsFrom(c)
	listingID := c.Param("listingId")

	var input AddCommentInput
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Comment) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	var listing models.Listing
	if err := database.DB.Select("id").First(&listing, "id = ?", listingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	authorName := "Anonymous"
	if claims != nil {
		authorName = claims.Username
	}

	comment := models.ListingComment{
		ListingID:  listingID,
		Author:     userID,
		AuthorName: authorName,
		Comment:    strings.TrimSpace(input.Comment),
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func GetAllCommentsOnListing(c *gin.Context) {
	var comments []models.ListingComment
	err := database.DB.Where("listing_id = ?", c.Param("listingId")).
		Order("created_at asc").Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, comments)
}

func DeleteCommentOnListing(c *gin.Context) {
	userID := c.GetString("userId")
	commentID := c.Param("commentId")

	var comment models.ListingComment
	if err := database.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	// Comment author or listing owner may delete.
	isAuthor := comment.Author == userID
	isOwner := false
	var listing models.Listing
	if err := database.DB.Select("user_id").First(&listing, "id = ?", comment.ListingID).Error; err == nil {
		isOwner = listing.UserID == userID
	}
	if !isAuthor && !isOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
