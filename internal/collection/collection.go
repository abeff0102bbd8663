// Package collection содержит обобщённые операции над срезами, из которых
// собираются конвейеры сервиса.
package collection

// Map применяет fn к каждому элементу и возвращает новый срез того же размера.
func Map[T, R any](input []T, fn func(T) R) []R {
	out := make([]R, 0, len(input))
	for _, item := range input {
		out = append(out, fn(item))
	}
	return out
}

// TryMap работает как Map, но останавливается на первой ошибке fn и
// возвращает её без изменений. Частичный результат не отдаётся.
func TryMap[T, R any](input []T, fn func(T) (R, error)) ([]R, error) {
	out := make([]R, 0, len(input))
	for _, item := range input {
		r, err := fn(item)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Filter оставляет элементы, для которых keep вернул true.
func Filter[T any](input []T, keep func(T) bool) []T {
	out := make([]T, 0, len(input))
	for _, item := range input {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// RemoveIf удаляет элементы, для которых drop вернул true, переиспользуя
// исходный срез. Порядок оставшихся элементов сохраняется.
func RemoveIf[T any](input []T, drop func(T) bool) []T {
	kept := input[:0]
	for _, item := range input {
		if !drop(item) {
			kept = append(kept, item)
		}
	}
	clear(input[len(kept):])
	return kept
}

func ForEach[T any](input []T, fn func(T)) {
	for _, item := range input {
		fn(item)
	}
}
