package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	_ "icecream-parlor/docs"

	gin "github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"icecream-parlor/internal/domain"
	"icecream-parlor/internal/service"
)

// BatchPublisher ставит заявку на производство в очередь.
type BatchPublisher interface {
	PublishBatch(ctx context.Context, flavors []string) (domain.BatchRequest, error)
}

type Handler struct {
	service   *service.ParlorService
	log       *zap.Logger
	publisher BatchPublisher
}

// NewHandler: publisher может быть nil, тогда /batches/publish отвечает 503.
func NewHandler(svc *service.ParlorService, publisher BatchPublisher, log *zap.Logger) *Handler {
	return &Handler{service: svc, publisher: publisher, log: log}
}

type flavorsRequest struct {
	Flavors []string `json:"flavors"`
}

type batchResponse struct {
	CartonsProduced int `json:"cartons_produced"`
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/sundaes", h.getSundae)
	r.POST("/batches", h.prepareFlavors)
	r.POST("/batches/publish", h.publishBatch)
	r.GET("/cartons", h.getCartons)
	r.GET("/recipes", h.listRecipes)
	r.GET("/recipes/:flavor", h.getRecipe)
	r.POST("/recipes", h.saveRecipe)
}

// @Summary      Собрать сандей
// @Description  По шарику каждого запрошенного вкуса; неизвестные и закончившиеся вкусы возвращаются в missing
// @Tags         sundaes
// @Accept       json
// @Produce      json
// @Param        request body flavorsRequest true "Flavors"
// @Success      200  {object}  domain.Sundae
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /sundaes [post]
func (h *Handler) getSundae(c *gin.Context) {
	var req flavorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	sundae, err := h.service.GetSundae(c.Request.Context(), req.Flavors)
	if err != nil {
		h.log.Error("failed to serve sundae", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, sundae)
}

// @Summary      Приготовить партию
// @Description  Один контейнер каждого вкуса; неизвестный вкус отменяет всю партию
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        request body flavorsRequest true "Flavors"
// @Success      200  {object}  batchResponse
// @Failure      400  {object}  map[string]interface{}
// @Failure      422  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /batches [post]
func (h *Handler) prepareFlavors(c *gin.Context) {
	var req flavorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if len(req.Flavors) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrNoFlavors.Error()})
		return
	}
	created, err := h.service.PrepareFlavors(c.Request.Context(), req.Flavors)
	if err != nil {
		var ccf *domain.CartonCreationFailedError
		if errors.As(err, &ccf) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "flavor": ccf.Flavor})
			return
		}
		h.log.Error("failed to prepare flavors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, batchResponse{CartonsProduced: created})
}

// @Summary      Поставить партию в очередь
// @Description  Публикует заявку в Kafka, производство идёт асинхронно
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        request body flavorsRequest true "Flavors"
// @Success      202  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /batches/publish [post]
func (h *Handler) publishBatch(c *gin.Context) {
	var req flavorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if len(req.Flavors) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrNoFlavors.Error()})
		return
	}
	if h.publisher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "producer not initialized"})
		return
	}
	batch, err := h.publisher.PublishBatch(c.Request.Context(), req.Flavors)
	if err != nil {
		h.log.Error("failed to publish batch", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to publish"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "published", "batch_id": batch.BatchID})
}

// @Summary      Остатки в контейнерах
// @Tags         cartons
// @Produce      json
// @Param        flavor  query    []string  true  "Flavor" collectionFormat(multi)
// @Success      200  {array}   domain.Carton
// @Failure      500  {object}  map[string]interface{}
// @Router       /cartons [get]
func (h *Handler) getCartons(c *gin.Context) {
	cartons, err := h.service.GetCartons(c.Request.Context(), c.QueryArray("flavor"))
	if err != nil {
		h.log.Error("failed to get cartons", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, cartons)
}

// @Summary      Список рецептов
// @Tags         recipes
// @Produce      json
// @Param        limit  query    int  false  "Limit"
// @Param        offset query    int  false  "Offset"
// @Success      200  {array}   domain.Recipe
// @Failure      500  {object}  map[string]interface{}
// @Router       /recipes [get]
func (h *Handler) listRecipes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	recipes, err := h.service.ListRecipes(c.Request.Context(), limit, offset)
	if err != nil {
		h.log.Error("failed to list recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// @Summary      Рецепт по вкусу
// @Tags         recipes
// @Produce      json
// @Param        flavor  path    string  true  "Flavor"
// @Success      200  {object}  domain.Recipe
// @Failure      404  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /recipes/{flavor} [get]
func (h *Handler) getRecipe(c *gin.Context) {
	recipe, err := h.service.GetRecipe(c.Request.Context(), c.Param("flavor"))
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		h.log.Error("failed to get recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// @Summary      Сохранить рецепт
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        recipe body domain.Recipe true "Recipe"
// @Success      201  {object}  domain.Recipe
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /recipes [post]
func (h *Handler) saveRecipe(c *gin.Context) {
	var recipe domain.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}
	if err := h.service.SaveRecipe(c.Request.Context(), recipe); err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		h.log.Error("failed to save recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, recipe)
}
