package converter

import "icecream-parlor/internal/domain"

// IngredientQueue выдаёт ингредиенты рецепта строго по порядку и удаляет
// выданные. Не предназначена для конкурентного использования.
type IngredientQueue struct {
	items []domain.Ingredient
}

func NewIngredientQueue(items ...domain.Ingredient) *IngredientQueue {
	return &IngredientQueue{items: items}
}

// Poll забирает следующий ингредиент; false — очередь исчерпана.
func (q *IngredientQueue) Poll() (domain.Ingredient, bool) {
	if len(q.items) == 0 {
		return domain.Ingredient{}, false
	}
	next := q.items[0]
	q.items = q.items[1:]
	return next, true
}

func (q *IngredientQueue) Len() int {
	return len(q.items)
}

// RecipeToIngredientQueue разворачивает рецепт в очередь в порядке,
// объявленном в рецепте.
func RecipeToIngredientQueue(recipe domain.Recipe) *IngredientQueue {
	items := make([]domain.Ingredient, 0, len(recipe.Ingredients))
	for _, ri := range recipe.Ingredients {
		items = append(items, domain.Ingredient{Name: ri.Name, Quantity: ri.Quantity})
	}
	return &IngredientQueue{items: items}
}
