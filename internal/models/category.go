package models

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Category is shared reference data classifying transactions and budgets.
//
// Categories are managed out of band: the backend only reads them. A default
// set is seeded into an empty table on connect so that a fresh deployment is
// usable.
type Category struct {
	DefaultModel
	Name string `gorm:"uniqueIndex"`
	Icon string
}

var ErrCategoryNameNotUnique = errors.New("the category name must be unique")

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Icon = strings.TrimSpace(c.Icon)

	return nil
}

// Categories returns all categories.
func Categories(db *gorm.DB) ([]Category, error) {
	var categories []Category
	err := db.Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// FindCategory returns the category with the ID.
func FindCategory(db *gorm.DB, id uint64) (Category, error) {
	var category Category
	err := db.First(&category, id).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return Category{}, fmt.Errorf("%w with ID %d", ErrCategoryNotFound, id)
		}
		return Category{}, err
	}

	return category, nil
}

// FindCategoryByName returns the category matching the name, ignoring case.
//
// When no category matches, the error lists the available category names so
// that users can correct their request.
func FindCategoryByName(db *gorm.DB, name string) (Category, error) {
	var category Category
	err := db.Where("name = ? COLLATE NOCASE", strings.TrimSpace(name)).First(&category).Error
	if err == nil {
		return category, nil
	}

	if !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		return Category{}, err
	}

	var names []string
	listErr := db.Model(&Category{}).Order("name ASC").Pluck("name", &names).Error
	if listErr != nil {
		return Category{}, listErr
	}

	return Category{}, fmt.Errorf("%w named %q. Available categories: %s", ErrCategoryNotFound, name, strings.Join(names, ", "))
}

// defaultCategories is the reference data seeded into an empty database.
var defaultCategories = []Category{
	{Name: "Food", Icon: "🍔"},
	{Name: "Transport", Icon: "🚗"},
	{Name: "Housing", Icon: "🏠"},
	{Name: "Health", Icon: "💊"},
	{Name: "Leisure", Icon: "🎮"},
	{Name: "Salary", Icon: "💰"},
}

// seedCategories creates the default categories. It only touches an empty
// table, existing reference data is never modified.
func seedCategories(db *gorm.DB) error {
	var count int64
	err := db.Model(&Category{}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	categories := make([]Category, len(defaultCategories))
	copy(categories, defaultCategories)

	return db.Create(&categories).Error
}
