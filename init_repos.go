// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository aynı *sql.DB bağlantısını alır ve interface döner.
package main

import (
	"database/sql"

	"github.com/akinalp/pisi/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
type Repositories struct {
	User          repository.UserRepository
	Session       repository.SessionRepository
	Gallery       repository.GalleryRepository
	Menu          repository.UnlimitedMenuRepository
	MenuItem      repository.MenuItemRepository
	Branch        repository.BranchRepository
	BranchGallery repository.BranchGalleryRepository
	BranchMenu    repository.BranchMenuRepository
	Message       repository.MessageRepository
	Franchise     repository.FranchiseRepository
	About         repository.AboutRepository
	Settings      repository.SettingsRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:          repository.NewSQLiteUserRepo(conn),
		Session:       repository.NewSQLiteSessionRepo(conn),
		Gallery:       repository.NewSQLiteGalleryRepo(conn),
		Menu:          repository.NewSQLiteMenuRepo(conn),
		MenuItem:      repository.NewSQLiteMenuItemRepo(conn),
		Branch:        repository.NewSQLiteBranchRepo(conn),
		BranchGallery: repository.NewSQLiteBranchGalleryRepo(conn),
		BranchMenu:    repository.NewSQLiteBranchMenuRepo(conn),
		Message:       repository.NewSQLiteMessageRepo(conn),
		Franchise:     repository.NewSQLiteFranchiseRepo(conn),
		About:         repository.NewSQLiteAboutRepo(conn),
		Settings:      repository.NewSQLiteSettingsRepo(conn),
	}
}
