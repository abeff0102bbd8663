package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"icecream-parlor/internal/cache"
	"icecream-parlor/internal/collection"
	"icecream-parlor/internal/converter"
	"icecream-parlor/internal/domain"
	"icecream-parlor/internal/maker"
	"icecream-parlor/internal/repository"
)

var ErrNoFlavors = errors.New("at least one flavor is required")

// Границы страницы для ListRecipes
const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type ParlorService struct {
	recipes         repository.RecipeRepository
	cartons         repository.CartonRepository
	cache           cache.Cache
	maker           maker.Maker
	log             *zap.Logger
	tracer          trace.Tracer
	scoopsPerCarton int
}

func NewParlorService(
	recipes repository.RecipeRepository,
	cartons repository.CartonRepository,
	cache cache.Cache,
	maker maker.Maker,
	log *zap.Logger,
	scoopsPerCarton int,
) *ParlorService {
	return &ParlorService{
		recipes:         recipes,
		cartons:         cartons,
		cache:           cache,
		maker:           maker,
		log:             log,
		tracer:          otel.Tracer("icecream-parlor/service"),
		scoopsPerCarton: scoopsPerCarton,
	}
}

// flavorBatch — очередь ингредиентов одного рецепта вместе с вкусом,
// чтобы после удачной заморозки пополнить нужный контейнер.
type flavorBatch struct {
	flavor      string
	ingredients *converter.IngredientQueue
}

// GetSundae собирает десерт по шарику из каждого непустого контейнера.
// Неизвестные и закончившиеся вкусы пропускаются без ошибки и попадают в
// Missing: платит клиент только за выданные шарики.
func (s *ParlorService) GetSundae(ctx context.Context, flavors []string) (domain.Sundae, error) {
	ctx, span := s.tracer.Start(ctx, "ParlorService.GetSundae",
		trace.WithAttributes(attribute.StringSlice("flavors", flavors)))
	defer span.End()

	// Неизвестные вкусы отфильтровывает хранилище
	cartons, err := s.cartons.GetCartonsByFlavorNames(ctx, flavors)
	if err != nil {
		s.log.Error("failed to get cartons", zap.Strings("flavors", flavors), zap.Error(err))
		span.SetStatus(codes.Error, err.Error())
		return domain.Sundae{}, fmt.Errorf("failed to get cartons: %w", err)
	}

	cartons = collection.RemoveIf(cartons, domain.Carton.IsEmpty)

	sundae := s.buildSundae(ctx, cartons)
	sundae.Missing = missingFlavors(flavors, sundae.Scoops)

	span.SetAttributes(attribute.Int("scoops", len(sundae.Scoops)))
	s.log.Debug("sundae served", zap.Strings("scoops", sundae.Scoops), zap.Strings("missing", sundae.Missing))
	return sundae, nil
}

func (s *ParlorService) buildSundae(ctx context.Context, cartons []domain.Carton) domain.Sundae {
	sundae := domain.Sundae{Scoops: make([]string, 0, len(cartons))}

	collection.ForEach(cartons, func(c domain.Carton) {
		// Контейнер мог опустеть после выборки (параллельный запрос или
		// повтор вкуса в этом же заказе) — такой шарик не продаём.
		if _, err := s.cartons.TakeScoop(ctx, c.Flavor); err != nil {
			if errors.Is(err, domain.ErrCartonEmpty) || errors.Is(err, domain.ErrCartonNotFound) {
				s.log.Debug("carton ran out", zap.String("flavor", c.Flavor))
				return
			}
			s.log.Error("failed to take scoop", zap.String("flavor", c.Flavor), zap.Error(err))
			return
		}
		sundae.AddScoop(c.Flavor)
	})

	return sundae
}

// missingFlavors — запрошенные вкусы минус выданные, с учётом повторов.
func missingFlavors(requested, served []string) []string {
	left := make(map[string]int, len(served))
	for _, flavor := range served {
		left[flavor]++
	}
	var missing []string
	for _, flavor := range requested {
		if left[flavor] > 0 {
			left[flavor]--
			continue
		}
		missing = append(missing, flavor)
	}
	return missing
}

// PrepareFlavors делает по одному контейнеру каждого вкуса и возвращает
// число удачных попыток. Если для любого вкуса нет рецепта, партия целиком
// отменяется с CartonCreationFailedError и мороженица не запускается.
// Неудачная заморозка одного вкуса остальные не останавливает.
func (s *ParlorService) PrepareFlavors(ctx context.Context, flavors []string) (int, error) {
	ctx, span := s.tracer.Start(ctx, "ParlorService.PrepareFlavors",
		trace.WithAttributes(attribute.StringSlice("flavors", flavors)))
	defer span.End()

	recipes, err := collection.TryMap(flavors, func(flavor string) (domain.Recipe, error) {
		recipe, err := s.GetRecipe(ctx, flavor)
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return domain.Recipe{}, &domain.CartonCreationFailedError{Flavor: flavor, Err: err}
		}
		return recipe, err
	})
	if err != nil {
		s.log.Warn("batch rejected", zap.Strings("flavors", flavors), zap.Error(err))
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	batches := collection.Map(recipes, func(recipe domain.Recipe) flavorBatch {
		return flavorBatch{flavor: recipe.Flavor, ingredients: converter.RecipeToIngredientQueue(recipe)}
	})

	created := s.makeIceCreamCartons(ctx, batches)
	span.SetAttributes(attribute.Int("cartons_created", created))
	s.log.Info("batch prepared", zap.Int("requested", len(flavors)), zap.Int("created", created))
	return created, nil
}

func (s *ParlorService) makeIceCreamCartons(ctx context.Context, batches []flavorBatch) int {
	cartonsCreated := 0
	for _, batch := range batches {
		if !s.maker.PrepareCarton(ctx, batch.ingredients.Poll) {
			continue
		}
		cartonsCreated++
		s.restock(ctx, batch.flavor)
	}
	return cartonsCreated
}

// restock кладёт свежий контейнер на витрину. Ошибка не отменяет того,
// что контейнер уже сделан.
func (s *ParlorService) restock(ctx context.Context, flavor string) {
	if s.scoopsPerCarton <= 0 {
		return
	}
	carton, err := s.cartons.Restock(ctx, flavor, s.scoopsPerCarton)
	if err != nil {
		s.log.Error("failed to restock carton", zap.String("flavor", flavor), zap.Error(err))
		return
	}
	s.log.Debug("carton restocked", zap.String("flavor", flavor), zap.Int("scoops", carton.Scoops))
}

// GetRecipe сначала смотрит в кеш, при промахе идёт в хранилище.
func (s *ParlorService) GetRecipe(ctx context.Context, flavor string) (domain.Recipe, error) {
	if recipe, ok := s.cache.Get(ctx, flavor); ok {
		return recipe, nil
	}
	recipe, err := s.recipes.GetRecipe(ctx, flavor)
	if err != nil {
		return domain.Recipe{}, err
	}
	s.cache.Put(ctx, recipe)
	return recipe, nil
}

func (s *ParlorService) ListRecipes(ctx context.Context, limit, offset int) ([]domain.Recipe, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	if offset < 0 {
		offset = 0
	}
	return s.recipes.ListRecipes(ctx, limit, offset)
}

func (s *ParlorService) SaveRecipe(ctx context.Context, recipe domain.Recipe) error {
	if err := ValidateRecipe(recipe); err != nil {
		return err
	}
	if err := s.recipes.SaveRecipe(ctx, recipe); err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	s.cache.Put(ctx, recipe)
	return nil
}

func (s *ParlorService) GetCartons(ctx context.Context, flavors []string) ([]domain.Carton, error) {
	return s.cartons.GetCartonsByFlavorNames(ctx, flavors)
}

// HandleBatchMessage разбирает заявку из Kafka и запускает производство.
func (s *ParlorService) HandleBatchMessage(ctx context.Context, key string, payload []byte) error {
	var req domain.BatchRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		s.log.Error("failed to unmarshal batch request", zap.Error(err))
		return err
	}
	if req.BatchID == "" {
		req.BatchID = key
	}
	if len(req.Flavors) == 0 {
		return fmt.Errorf("batch %s: %w", req.BatchID, ErrNoFlavors)
	}

	created, err := s.PrepareFlavors(ctx, req.Flavors)
	if err != nil {
		return fmt.Errorf("batch %s: %w", req.BatchID, err)
	}
	s.log.Info("batch message handled", zap.String("batch_id", req.BatchID), zap.Int("created", created))
	return nil
}

// ValidationError описывает некорректный рецепт.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// ValidateRecipe проверяет рецепт перед сохранением
func ValidateRecipe(recipe domain.Recipe) error {
	var problems []string

	if strings.TrimSpace(recipe.Flavor) == "" {
		problems = append(problems, "flavor is required")
	}
	if len(recipe.Ingredients) == 0 {
		problems = append(problems, "at least one ingredient is required")
	}
	for i, ing := range recipe.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			problems = append(problems, fmt.Sprintf("ingredients[%d]: name is required", i))
		}
		if ing.Quantity <= 0 {
			problems = append(problems, fmt.Sprintf("ingredients[%d]: quantity must be positive", i))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
