package seed

import (
	"log/slog"
	"time"

	"github.com/serviguard/roster/backend/internal/domain"
	"github.com/serviguard/roster/backend/internal/repository"
)

type demoPost struct {
	Name           string
	ShiftStart     string
	ShiftEnd       string
	Weekdays       []int32
	RequiredGuards int32
}

type demoInstallation struct {
	Name    string
	Account string
	Address string
	Posts   []demoPost
}

// Demo installations modeled after the kind of contract a private
// security company actually runs: a 24/7 gate with a day seat and a
// night seat, plus weekday-only reception and patrol posts.
var demoInstallations = []demoInstallation{
	{
		Name:    "Planta Quilicura",
		Account: "CL-0001",
		Address: "Av. Los Libertadores 2301, Quilicura",
		Posts: []demoPost{
			{Name: "Portería principal día", ShiftStart: "08:00:00", ShiftEnd: "20:00:00", RequiredGuards: 2},
			{Name: "Portería principal noche", ShiftStart: "20:00:00", ShiftEnd: "08:00:00", RequiredGuards: 2},
			{Name: "Ronda perimetral", ShiftStart: "22:00:00", ShiftEnd: "06:00:00", Weekdays: []int32{1, 2, 3, 4, 5}, RequiredGuards: 1},
		},
	},
	{
		Name:    "Edificio Apoquindo",
		Account: "CL-0002",
		Address: "Av. Apoquindo 4501, Las Condes",
		Posts: []demoPost{
			{Name: "Recepción", ShiftStart: "07:00:00", ShiftEnd: "19:00:00", Weekdays: []int32{1, 2, 3, 4, 5}, RequiredGuards: 1},
			{Name: "Conserjería nocturna", ShiftStart: "19:00:00", ShiftEnd: "07:00:00", RequiredGuards: 1},
		},
	},
	{
		Name:    "Centro de Distribución Maipú",
		Account: "CL-0003",
		Address: "Camino a Melipilla 9800, Maipú",
		Posts: []demoPost{
			{Name: "Control de acceso camiones", ShiftStart: "06:00:00", ShiftEnd: "18:00:00", RequiredGuards: 2},
			{Name: "Guardia nocturno bodega", ShiftStart: "18:00:00", ShiftEnd: "06:00:00", RequiredGuards: 2},
			{Name: "CCTV", ShiftStart: "00:00:00", ShiftEnd: "00:00:00", RequiredGuards: 1},
		},
	},
}

// SeedDemoData inserts the demo installations with their posts. Posts
// become active on the first day of the current month so freshly
// painted grids are never empty.
func SeedDemoData(r *repository.Repository, organizationID int64) {
	now := time.Now().UTC()
	activeFrom := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	installationsInserted := 0
	postsInserted := 0
	for _, di := range demoInstallations {
		installation := &domain.Installation{
			OrganizationID: organizationID,
			Name:           di.Name,
			Account:        di.Account,
			Address:        di.Address,
		}
		if err := r.CreateInstallation(installation); err != nil {
			slog.Error("could not insert installation", slog.String("name", di.Name), slog.String("error", err.Error()))
			continue
		}
		installationsInserted++

		for _, dp := range di.Posts {
			post := &domain.Post{
				OrganizationID: organizationID,
				InstallationID: installation.ID,
				Name:           dp.Name,
				ShiftStart:     dp.ShiftStart,
				ShiftEnd:       dp.ShiftEnd,
				Weekdays:       dp.Weekdays,
				RequiredGuards: dp.RequiredGuards,
				ActiveFrom:     activeFrom,
			}
			if err := r.CreatePost(post); err != nil {
				slog.Error("could not insert post", slog.String("name", dp.Name), slog.String("error", err.Error()))
				continue
			}
			postsInserted++
		}
	}

	slog.Info("demo data inserted",
		slog.Int("installations", installationsInserted),
		slog.Int("posts", postsInserted),
	)
}
