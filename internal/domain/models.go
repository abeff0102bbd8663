package domain

// RecipeIngredient — позиция рецепта: ингредиент и его количество.
type RecipeIngredient struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Recipe описывает, из чего готовится вкус. После загрузки не меняется.
type Recipe struct {
	Flavor      string             `json:"flavor"`
	Ingredients []RecipeIngredient `json:"ingredients"`
}

// Ingredient — единица сырья, которую мороженица забирает из очереди.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Carton — контейнер с шариками одного вкуса.
type Carton struct {
	Flavor string `json:"flavor"`
	Scoops int    `json:"scoops"`
}

func (c Carton) IsEmpty() bool {
	return c.Scoops == 0
}

// TakeScoop уменьшает остаток на один шарик. Остаток не уходит в минус.
func (c *Carton) TakeScoop() error {
	if c.Scoops <= 0 {
		return ErrCartonEmpty
	}
	c.Scoops--
	return nil
}

// Sundae собирается по шарику; Missing — вкусы, которые не попали в десерт
// (неизвестные или закончившиеся), за них клиент не платит.
type Sundae struct {
	Scoops  []string `json:"scoops"`
	Missing []string `json:"missing,omitempty"`
}

func (s *Sundae) AddScoop(flavor string) {
	s.Scoops = append(s.Scoops, flavor)
}

// BatchRequest — заявка на производство партии, приходит по HTTP или из Kafka.
type BatchRequest struct {
	BatchID string   `json:"batch_id"`
	Flavors []string `json:"flavors"`
}
