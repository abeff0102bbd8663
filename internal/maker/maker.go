package maker

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"icecream-parlor/internal/domain"
)

// IngredientSupplier отдаёт следующий ингредиент; false — сырьё закончилось.
type IngredientSupplier func() (domain.Ingredient, bool)

type Maker interface {
	// PrepareCarton пытается сделать один контейнер из поставляемых ингредиентов.
	PrepareCarton(ctx context.Context, supply IngredientSupplier) bool
}

// FreezerMaker всегда выбирает поставку до конца и отказывается делать
// контейнер, если сырьё пустое, некорректное или его слишком много.
type FreezerMaker struct {
	maxIngredients int
	log            *zap.Logger
}

func NewFreezerMaker(maxIngredients int, log *zap.Logger) *FreezerMaker {
	if maxIngredients <= 0 {
		maxIngredients = 20
	}
	return &FreezerMaker{maxIngredients: maxIngredients, log: log}
}

func (m *FreezerMaker) PrepareCarton(ctx context.Context, supply IngredientSupplier) bool {
	var (
		count  int
		reason string
	)
	for {
		ing, ok := supply()
		if !ok {
			break
		}
		count++
		if reason != "" {
			continue
		}
		switch {
		case strings.TrimSpace(ing.Name) == "":
			reason = "ingredient without name"
		case ing.Quantity <= 0:
			reason = "non-positive quantity of " + ing.Name
		case count > m.maxIngredients:
			reason = "too many ingredients"
		}
	}
	if count == 0 {
		reason = "no ingredients supplied"
	}
	if err := ctx.Err(); err != nil && reason == "" {
		reason = err.Error()
	}

	if reason != "" {
		m.log.Warn("carton refused", zap.String("reason", reason), zap.Int("ingredients", count))
		return false
	}
	m.log.Debug("carton prepared", zap.Int("ingredients", count))
	return true
}
