package service

import (
	"context"
	"fmt"

	"github.com/jkonate/solde/internal/common"
	"github.com/jkonate/solde/internal/guard"
	"github.com/jkonate/solde/internal/model"
	"github.com/jkonate/solde/internal/storage"
)

func (r *Repository) saveCategories(ctx context.Context, categories []model.CustomCategory) error {
	if err := r.store.Save(ctx, storage.KeyCategories, categories); err != nil {
		return common.NewUserError("could not save categories", err)
	}
	return nil
}

// AddCategory creates a new category. Names are the join field from expenses
// and budget lines, so they must be unique.
func (r *Repository) AddCategory(ctx context.Context, name, icon, color string) ([]model.CustomCategory, error) {
	categories := r.Categories(ctx)
	for _, cat := range categories {
		if cat.Name == name {
			return nil, common.NewUserError(fmt.Sprintf("category %q", name), common.ErrDuplicateName)
		}
	}

	categories = append(categories, model.CustomCategory{
		ID:    newID(),
		Name:  name,
		Icon:  icon,
		Color: color,
	})
	if err := r.saveCategories(ctx, categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// UpdateCategoryStyle changes the icon and color of a category without
// touching the name join.
func (r *Repository) UpdateCategoryStyle(ctx context.Context, id, icon, color string) ([]model.CustomCategory, error) {
	categories := r.Categories(ctx)
	found := false
	for i := range categories {
		if categories[i].ID == id {
			categories[i].Icon = icon
			categories[i].Color = color
			found = true
			break
		}
	}
	if !found {
		return nil, common.NewUserError(fmt.Sprintf("category %s", id), common.ErrNotFound)
	}
	if err := r.saveCategories(ctx, categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// RenameCategory renames a category and rewrites the category field on every
// referencing expense, future expense, and budget line in the same save
// batch. The name join is fragile by construction; cascading keeps it
// consistent instead of relying on accidental name stability.
func (r *Repository) RenameCategory(ctx context.Context, id, newName string) ([]model.CustomCategory, error) {
	categories := r.Categories(ctx)

	var oldName string
	idx := -1
	for i, cat := range categories {
		if cat.ID == id {
			oldName = cat.Name
			idx = i
		} else if cat.Name == newName {
			return nil, common.NewUserError(fmt.Sprintf("category %q", newName), common.ErrDuplicateName)
		}
	}
	if idx < 0 {
		return nil, common.NewUserError(fmt.Sprintf("category %s", id), common.ErrNotFound)
	}
	if oldName == newName {
		return categories, nil
	}

	categories[idx].Name = newName

	expenses := r.Expenses(ctx)
	for i := range expenses {
		if expenses[i].Category == oldName {
			expenses[i].Category = newName
		}
	}
	futures := r.FutureExpenses(ctx)
	for i := range futures {
		if futures[i].Category == oldName {
			futures[i].Category = newName
		}
	}
	lines := r.BudgetLines(ctx)
	for i := range lines {
		if lines[i].Category == oldName {
			lines[i].Category = newName
		}
	}

	if err := r.saveCategories(ctx, categories); err != nil {
		return nil, err
	}
	if err := r.saveExpenses(ctx, expenses); err != nil {
		return nil, err
	}
	if err := r.saveFutureExpenses(ctx, futures); err != nil {
		return nil, err
	}
	if err := r.store.Save(ctx, storage.KeyBudgetLines, lines); err != nil {
		return nil, common.NewUserError("could not save budget lines", err)
	}
	return categories, nil
}

// IsCategoryInUse reports whether any record references the category by
// name. The UI consults this before asking the user to confirm a delete.
func (r *Repository) IsCategoryInUse(ctx context.Context, name string) bool {
	usage := guard.CategoryUsageOf(name, r.Expenses(ctx), r.FutureExpenses(ctx), r.BudgetLines(ctx))
	return usage.InUse()
}

// DeleteCategory removes a category. A category still referenced by any
// expense, future expense, or budget line cannot be deleted; the error
// reports how many records reference it.
func (r *Repository) DeleteCategory(ctx context.Context, id string) ([]model.CustomCategory, error) {
	categories := r.Categories(ctx)

	idx := -1
	for i, cat := range categories {
		if cat.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, common.NewUserError(fmt.Sprintf("category %s", id), common.ErrNotFound)
	}

	name := categories[idx].Name
	usage := guard.CategoryUsageOf(name, r.Expenses(ctx), r.FutureExpenses(ctx), r.BudgetLines(ctx))
	if usage.InUse() {
		return nil, common.NewUserError(
			fmt.Sprintf("cannot delete category %q: referenced by %d record(s)", name, usage.Total()),
			common.ErrCategoryInUse)
	}

	categories = append(categories[:idx], categories[idx+1:]...)
	if err := r.saveCategories(ctx, categories); err != nil {
		return nil, err
	}
	return categories, nil
}
