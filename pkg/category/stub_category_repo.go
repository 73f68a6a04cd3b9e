package category

import (
	"context"
	"sort"
)

type StubCategoryRepo struct {
	nextId int
	data   map[int]Category
}

func NewStubCategoryRepo() *StubCategoryRepo {
	return &StubCategoryRepo{data: map[int]Category{}}
}

func (s *StubCategoryRepo) Store(ctx context.Context, userId int, category Category) (int, error) {
	s.nextId++
	category.ID = s.nextId
	s.data[s.nextId] = category
	return s.nextId, nil
}

func (s *StubCategoryRepo) GetAll(ctx context.Context, userId int) ([]Category, error) {
	categories := make([]Category, 0, len(s.data))
	for _, category := range s.data {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (s *StubCategoryRepo) FindById(ctx context.Context, userId int, id int) (*Category, error) {
	category, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	return &category, nil
}
