package database

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"

	"github.com/akinalp/pisi/models"
)

// Seed, ilk kurulumda veritabanına yazılan varsayılan içeriktir.
type Seed struct {
	Settings          map[string]string `yaml:"settings"`
	About             models.AboutPage  `yaml:"about"`
	MenuCategories    []string          `yaml:"menu_categories"`
	GalleryCategories []string          `yaml:"gallery_categories"`
}

// LoadSeed, binary'ye gömülü seed.yaml dosyasını okur.
func LoadSeed() (*Seed, error) {
	return ParseSeed(embeddedSeed)
}

// ParseSeed, verilen YAML içeriğini Seed'e çevirir.
// Bilinmeyen ayar anahtarları reddedilir.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}

	for key := range seed.Settings {
		if !models.IsKnownSetting(key) {
			return nil, fmt.Errorf("seed contains unknown setting %q", key)
		}
	}

	return &seed, nil
}

// ApplySeed, eksik ayarları ve hakkımızda satırını yazar.
// Mevcut değerlere dokunmaz (INSERT OR IGNORE), her başlangıçta güvenle çağrılabilir.
func (db *DB) ApplySeed(ctx context.Context, seed *Seed) error {
	var inserted int64

	for key, value := range seed.Settings {
		res, err := db.Conn.ExecContext(ctx,
			`INSERT OR IGNORE INTO site_settings (key, value) VALUES (?, ?)`, key, value)
		if err != nil {
			return fmt.Errorf("failed to seed setting %s: %w", key, err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}

	a := seed.About
	res, err := db.Conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO about_page (id, title, subtitle, content, mission, vision, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		models.AboutPageID, a.Title, a.Subtitle, a.Content, a.Mission, a.Vision, a.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to seed about page: %w", err)
	}
	n, _ := res.RowsAffected()
	inserted += n

	if inserted > 0 {
		log.Printf("[database] seeded %d default rows", inserted)
	}
	return nil
}
