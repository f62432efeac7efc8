package catalog_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mohammed-adachi/marjane-products-pipeline/internal/catalog"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "produits.json")
	payload := `[
		{"title": "Dark Chocolate Bar 100g - LINDT", "price": "25,90 DH", "image": "https://cdn.example/lindt.jpg"},
		{"title": "Whole Milk 1L - CENTRALE"}
	]`
	assert.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	products, err := catalog.Load(path)
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, "Dark Chocolate Bar 100g - LINDT", products[0].Title)
	assert.Equal(t, "25,90 DH", products[0].Price)

	// Absent fields default to the empty string
	assert.Equal(t, "", products[1].Price)
	assert.Equal(t, "", products[1].Image)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := catalog.Load(path)
	assert.Error(t, err)
}

func TestNewCategoryIndex(t *testing.T) {
	idx := catalog.NewCategoryIndex([]string{"Alimentaire", "Maison", "Alimentaire", ""})

	assert.Equal(t, []int{0, 2}, idx.Indices("Alimentaire"))
	assert.Equal(t, []int{1}, idx.Indices("Maison"))
	assert.Nil(t, idx.Indices("Électronique"))
	assert.ElementsMatch(t, []string{"Alimentaire", "Maison"}, idx.Categories())
}

func TestLoadCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "produits_clean.csv")
	csv := "title,price,categorie,marque\n" +
		"Chocolat Noir,25 DH,Alimentaire,LINDT\n" +
		"Lessive 3L,40 DH,Maison,TIDE\n" +
		"Biscuits,8 DH,Alimentaire,BIMO\n"
	assert.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	idx, err := catalog.LoadCategories(path)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 2}, idx.Indices("Alimentaire"))
	assert.Equal(t, []int{1}, idx.Indices("Maison"))
}

func TestLoadCategoriesMissingFile(t *testing.T) {
	_, err := catalog.LoadCategories(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadCategoriesNoColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no_col.csv")
	assert.NoError(t, os.WriteFile(path, []byte("title,price\na,b\n"), 0644))

	_, err := catalog.LoadCategories(path)
	assert.Error(t, err)
}
