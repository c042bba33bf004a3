package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/antonin-suzor/kanaschool/internal/database/kanas"
	"github.com/antonin-suzor/kanaschool/internal/entities"
)

// KanasController serves the static kana catalog.
type KanasController struct {
	kanaStore *kanas.Repository
}

// NewKanasController creates a new KanasController.
func NewKanasController(kanaStore *kanas.Repository) *KanasController {
	return &KanasController{kanaStore: kanaStore}
}

// All returns the full catalog, both scripts.
func (kc *KanasController) All(c *gin.Context) {
	list, err := kc.kanaStore.All()
	if err != nil {
		respondInternalError(c, err, "kanas list", "failed to load kanas")
		return
	}
	c.JSON(http.StatusOK, gin.H{"kanas": list})
}

// Hiraganas returns the hiragana half of the catalog.
func (kc *KanasController) Hiraganas(c *gin.Context) {
	list, err := kc.kanaStore.Hiraganas()
	if err != nil {
		respondInternalError(c, err, "hiraganas list", "failed to load kanas")
		return
	}
	c.JSON(http.StatusOK, gin.H{"kanas": list})
}

// Katakanas returns the katakana half of the catalog.
func (kc *KanasController) Katakanas(c *gin.Context) {
	list, err := kc.kanaStore.Katakanas()
	if err != nil {
		respondInternalError(c, err, "katakanas list", "failed to load kanas")
		return
	}
	c.JSON(http.StatusOK, gin.H{"kanas": list})
}

// HiraganaDetail returns one hiragana by reading. The "ji" reading has
// two glyphs; the t-line variant comes back as alternativeKana.
func (kc *KanasController) HiraganaDetail(c *gin.Context) {
	kc.detail(c, false, "hiragana not found")
}

// KatakanaDetail returns one katakana by reading, with the same
// two-glyph handling as hiragana.
func (kc *KanasController) KatakanaDetail(c *gin.Context) {
	kc.detail(c, true, "katakana not found")
}

func (kc *KanasController) detail(c *gin.Context, isKatakana bool, notFoundMsg string) {
	reading := c.Param("reading")

	kana, err := kc.kanaStore.ByReading(reading, isKatakana)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, notFoundMsg)
			return
		}
		respondInternalError(c, err, "kana detail", "failed to load kana")
		return
	}

	var alternative *entities.Kana
	if kana.Reading == "ji" {
		alternative, err = kc.kanaStore.ByReadingAndLine("ji", "t", isKatakana)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			respondInternalError(c, err, "kana detail alternative", "failed to load kana")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"kana":            kana,
		"alternativeKana": alternative,
	})
}
