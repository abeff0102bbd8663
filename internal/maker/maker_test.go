package maker_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"icecream-parlor/internal/converter"
	"icecream-parlor/internal/domain"
	"icecream-parlor/internal/maker"
)

func TestFreezerMaker_PrepareCarton(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		max         int
		ingredients []domain.Ingredient
		want        bool
	}{
		{
			name:        "valid recipe",
			max:         10,
			ingredients: []domain.Ingredient{{Name: "cream", Quantity: 2}, {Name: "sugar", Quantity: 1}},
			want:        true,
		},
		{
			name: "no ingredients",
			max:  10,
			want: false,
		},
		{
			name:        "zero quantity",
			max:         10,
			ingredients: []domain.Ingredient{{Name: "cream", Quantity: 2}, {Name: "sugar", Quantity: 0}},
			want:        false,
		},
		{
			name:        "blank name",
			max:         10,
			ingredients: []domain.Ingredient{{Name: " ", Quantity: 1}},
			want:        false,
		},
		{
			name:        "too many ingredients",
			max:         1,
			ingredients: []domain.Ingredient{{Name: "cream", Quantity: 1}, {Name: "sugar", Quantity: 1}},
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := maker.NewFreezerMaker(tt.max, zap.NewNop())
			queue := converter.NewIngredientQueue(tt.ingredients...)

			assert.Equal(t, tt.want, m.PrepareCarton(ctx, queue.Poll))
			// Поставка всегда выбирается до конца
			assert.Equal(t, 0, queue.Len())
		})
	}
}

func TestFreezerMaker_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := maker.NewFreezerMaker(10, zap.NewNop())
	queue := converter.NewIngredientQueue(domain.Ingredient{Name: "cream", Quantity: 1})
	assert.False(t, m.PrepareCarton(ctx, queue.Poll))
}
