package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"nzwalks-api/internal/auth"
	"nzwalks-api/internal/domain"
	"nzwalks-api/internal/identity"
	"nzwalks-api/internal/query"
	"nzwalks-api/internal/repository"
	"nzwalks-api/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth         service.AuthService
	walks        service.WalkService
	regions      service.RegionService
	images       service.ImageService
	difficulties repository.DifficultyRepository
	issuer       *auth.Issuer
	logger       *logrus.Logger
}

func NewHandler(
	authSvc service.AuthService,
	walks service.WalkService,
	regions service.RegionService,
	images service.ImageService,
	difficulties repository.DifficultyRepository,
	issuer *auth.Issuer,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		auth:         authSvc,
		walks:        walks,
		regions:      regions,
		images:       images,
		difficulties: difficulties,
		issuer:       issuer,
		logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(recoveryMiddleware(h.logger))
	router.Use(h.authenticate())

	readAny := h.requireRoles(domain.RoleReader, domain.RoleWriter)
	readOnly := h.requireRoles(domain.RoleReader)
	writeOnly := h.requireRoles(domain.RoleWriter)

	api := router.Group("/api")
	{
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)

		api.GET("/walks", readAny, h.listWalks)
		api.GET("/walks/:id", readAny, h.getWalk)
		api.POST("/walks", writeOnly, h.createWalk)
		api.PUT("/walks/:id", writeOnly, h.updateWalk)
		api.DELETE("/walks/:id", writeOnly, h.deleteWalk)

		api.GET("/regions", readAny, h.listRegions)
		api.GET("/regions/:id", readOnly, h.getRegion)
		api.POST("/regions", writeOnly, h.createRegion)
		api.PUT("/regions/:id", writeOnly, h.updateRegion)
		api.DELETE("/regions/:id", writeOnly, h.deleteRegion)

		api.GET("/difficulties", readAny, h.listDifficulties)

		api.POST("/images/upload", writeOnly, h.uploadImage)
		api.GET("/images", readAny, h.listImages)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

type registerRequest struct {
	Username string   `json:"username" binding:"required"`
	Password string   `json:"password" binding:"required"`
	Roles    []string `json:"roles"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	JwtToken string `json:"jwtToken"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	result, err := h.auth.Register(c.Request.Context(), req.Username, req.Password, req.Roles)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": result.Message})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "incorrect username or password"})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "incorrect username or password"})
			return
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{JwtToken: token})
}

type walkRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	LengthKm     float64 `json:"lengthKm" binding:"required"`
	ImageURL     string  `json:"walkImageUrl"`
	DifficultyID string  `json:"difficultyId" binding:"required"`
	RegionID     string  `json:"regionId" binding:"required"`
}

func (r walkRequest) toDomain() *domain.Walk {
	return &domain.Walk{
		Name:         r.Name,
		Description:  r.Description,
		LengthKm:     r.LengthKm,
		ImageURL:     r.ImageURL,
		DifficultyID: r.DifficultyID,
		RegionID:     r.RegionID,
	}
}

func (h *Handler) listWalks(c *gin.Context) {
	spec, err := parseQuerySpec(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	walks, err := h.walks.List(c.Request.Context(), spec)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]WalkResponse, len(walks))
	for i := range walks {
		resp[i] = walkToResponse(walks[i])
	}
	c.JSON(http.StatusOK, resp)
}

// parseQuerySpec builds a query spec from the request's query string.
// Missing parameters fall back to defaults; unparseable numeric or boolean
// parameters are a 400, unknown field names are left for the query engine to
// ignore.
func parseQuerySpec(c *gin.Context) (query.Spec, error) {
	spec := query.DefaultSpec()
	spec.FilterOn = c.Query("filterOn")
	spec.FilterQuery = c.Query("filterQuery")
	spec.SortBy = c.Query("sortBy")

	if raw := c.Query("isAscending"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return query.Spec{}, errors.New("invalid isAscending parameter")
		}
		spec.Ascending = v
	}
	if raw := c.Query("pageNumber"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return query.Spec{}, errors.New("invalid pageNumber parameter")
		}
		spec.PageNumber = v
	}
	if raw := c.Query("pageSize"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return query.Spec{}, errors.New("invalid pageSize parameter")
		}
		spec.PageSize = v
	}

	return spec.Normalize(), nil
}

func (h *Handler) getWalk(c *gin.Context) {
	walk, err := h.walks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, walkToResponse(*walk))
}

func (h *Handler) createWalk(c *gin.Context) {
	var req walkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	walk, err := h.walks.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, walkToResponse(*walk))
}

func (h *Handler) updateWalk(c *gin.Context) {
	var req walkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	walk, err := h.walks.Update(c.Request.Context(), c.Param("id"), req.toDomain())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, walkToResponse(*walk))
}

func (h *Handler) deleteWalk(c *gin.Context) {
	walk, err := h.walks.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, walkToResponse(*walk))
}

type regionRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"regionImageUrl"`
}

func (h *Handler) listRegions(c *gin.Context) {
	regions, err := h.regions.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]RegionResponse, len(regions))
	for i := range regions {
		resp[i] = regionToResponse(regions[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getRegion(c *gin.Context) {
	region, err := h.regions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, regionToResponse(*region))
}

func (h *Handler) createRegion(c *gin.Context) {
	var req regionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	region, err := h.regions.Create(c.Request.Context(), &domain.Region{
		Code:     req.Code,
		Name:     req.Name,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, regionToResponse(*region))
}

func (h *Handler) updateRegion(c *gin.Context) {
	var req regionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	region, err := h.regions.Update(c.Request.Context(), c.Param("id"), &domain.Region{
		Code:     req.Code,
		Name:     req.Name,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, regionToResponse(*region))
}

func (h *Handler) deleteRegion(c *gin.Context) {
	region, err := h.regions.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, regionToResponse(*region))
}

func (h *Handler) listDifficulties(c *gin.Context) {
	difficulties, err := h.difficulties.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]DifficultyResponse, len(difficulties))
	for i, d := range difficulties {
		resp[i] = DifficultyResponse{ID: d.ID, Name: d.Name}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) uploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{"file is required"}})
		return
	}

	src, err := file.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer src.Close()

	image, err := h.images.Upload(c.Request.Context(), service.ImageUpload{
		FileName:        c.PostForm("fileName"),
		FileDescription: c.PostForm("fileDescription"),
		FileExtension:   filepath.Ext(file.Filename),
		SizeBytes:       file.Size,
		Body:            src,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, imageToResponse(*image))
}

func (h *Handler) listImages(c *gin.Context) {
	images, err := h.images.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]ImageResponse, len(images))
	for i := range images {
		resp[i] = imageToResponse(images[i])
	}
	c.JSON(http.StatusOK, resp)
}

// respondError maps domain errors onto status codes. Anything unexpected is
// logged under a correlation id and surfaced as a bare 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	var verrs *domain.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs.Errors})
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if errors.Is(err, repository.ErrDuplicate) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []string{err.Error()}})
		return
	}

	correlationID := uuid.NewString()
	h.logger.WithField("correlation_id", correlationID).WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":         "internal server error",
		"correlationId": correlationID,
	})
}

type WalkResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	LengthKm     float64             `json:"lengthKm"`
	ImageURL     string              `json:"walkImageUrl,omitempty"`
	Difficulty   *DifficultyResponse `json:"difficulty,omitempty"`
	Region       *RegionResponse     `json:"region,omitempty"`
	CreatedAt    string              `json:"createdAt"`
	UpdatedAt    string              `json:"updatedAt"`
	DifficultyID string              `json:"difficultyId"`
	RegionID     string              `json:"regionId"`
}

type DifficultyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RegionResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	ImageURL string `json:"regionImageUrl,omitempty"`
}

type ImageResponse struct {
	ID              string `json:"id"`
	FileName        string `json:"fileName"`
	FileDescription string `json:"fileDescription,omitempty"`
	FileExtension   string `json:"fileExtension"`
	SizeBytes       int64  `json:"fileSizeInBytes"`
	URL             string `json:"filePath"`
}

func walkToResponse(walk domain.Walk) WalkResponse {
	resp := WalkResponse{
		ID:           walk.ID,
		Name:         walk.Name,
		Description:  walk.Description,
		LengthKm:     walk.LengthKm,
		ImageURL:     walk.ImageURL,
		DifficultyID: walk.DifficultyID,
		RegionID:     walk.RegionID,
		CreatedAt:    walk.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    walk.UpdatedAt.Format(time.RFC3339),
	}
	if walk.Difficulty != nil {
		resp.Difficulty = &DifficultyResponse{ID: walk.Difficulty.ID, Name: walk.Difficulty.Name}
	}
	if walk.Region != nil {
		region := regionToResponse(*walk.Region)
		resp.Region = &region
	}
	return resp
}

func regionToResponse(region domain.Region) RegionResponse {
	return RegionResponse{
		ID:       region.ID,
		Code:     region.Code,
		Name:     region.Name,
		ImageURL: region.ImageURL,
	}
}

func imageToResponse(image domain.Image) ImageResponse {
	return ImageResponse{
		ID:              image.ID,
		FileName:        image.FileName,
		FileDescription: image.FileDescription,
		FileExtension:   image.FileExtension,
		SizeBytes:       image.SizeBytes,
		URL:             image.URL,
	}
}
