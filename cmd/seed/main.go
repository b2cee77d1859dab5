package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jambidev/barokah/internal/auth"
	"github.com/jambidev/barokah/internal/config"
	"github.com/jambidev/barokah/internal/db"
	"github.com/jambidev/barokah/internal/models"
	"github.com/jambidev/barokah/internal/utils"
)

type seedBrand struct {
	Name   string
	Models []models.PrinterModel
}

type seedCategory struct {
	Name     string
	Icon     string
	Problems []models.Problem
}

type seedTechnician struct {
	Name            string
	Phone           string
	Specialization  []string
	ExperienceYears int
	Rating          float64
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	now := time.Now().In(cfg.Timezone)

	brands := []seedBrand{
		{Name: "Canon", Models: brandModels("inkjet", "PIXMA G2010", "PIXMA G3010", "PIXMA MG2570S", "PIXMA TS307")},
		{Name: "Epson", Models: brandModels("inkjet", "L3210", "L3250", "L5290", "EcoTank L1250")},
		{Name: "HP", Models: append(brandModels("inkjet", "DeskJet 2337", "Ink Advantage 2775"), brandModels("laser", "LaserJet M15w", "LaserJet M111w")...)},
		{Name: "Brother", Models: append(brandModels("inkjet", "DCP-T420W", "DCP-T720DW"), brandModels("laser", "HL-L2375DW")...)},
		{Name: "Samsung", Models: brandModels("laser", "Xpress M2020", "Xpress M2070")},
	}
	for _, b := range brands {
		filter := bson.M{"name": b.Name}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":       primitive.NewObjectID().Hex(),
				"name":      b.Name,
				"models":    b.Models,
				"is_active": true,
				"createdAt": now,
				"updatedAt": now,
			},
		}
		if _, err := cols.PrinterBrands.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed brand %s: %v", b.Name, err)
		}
	}

	categories := []seedCategory{
		{
			Name: "Masalah Pencetakan",
			Icon: "printer",
			Problems: []models.Problem{
				problem("Hasil cetak bergaris", "Garis putih atau hitam pada hasil cetak", models.SeverityMedium, "1-2 jam", "Rp 50.000 - 150.000"),
				problem("Tinta tidak keluar", "Cartridge atau head tersumbat", models.SeverityHigh, "2-4 jam", "Rp 75.000 - 250.000"),
				problem("Warna tidak sesuai", "Kalibrasi warna meleset atau tinta tercampur", models.SeverityLow, "1 jam", "Rp 50.000 - 100.000"),
			},
		},
		{
			Name: "Masalah Kertas",
			Icon: "settings",
			Problems: []models.Problem{
				problem("Paper jam", "Kertas tersangkut di dalam printer", models.SeverityMedium, "1 jam", "Rp 50.000 - 100.000"),
				problem("Kertas tidak tertarik", "Roller aus atau kotor", models.SeverityMedium, "1-2 jam", "Rp 75.000 - 200.000"),
			},
		},
		{
			Name: "Masalah Koneksi",
			Icon: "wifi",
			Problems: []models.Problem{
				problem("Printer tidak terdeteksi", "USB atau jaringan tidak terhubung", models.SeverityMedium, "1 jam", "Rp 50.000 - 100.000"),
				problem("WiFi printer putus-putus", "Konfigurasi jaringan bermasalah", models.SeverityLow, "1 jam", "Rp 50.000"),
			},
		},
		{
			Name: "Masalah Listrik",
			Icon: "zap",
			Problems: []models.Problem{
				problem("Printer mati total", "Power supply atau board rusak", models.SeverityHigh, "1-3 hari", "Rp 150.000 - 500.000"),
				problem("Printer sering restart", "Tegangan tidak stabil atau komponen lemah", models.SeverityHigh, "1-2 hari", "Rp 100.000 - 300.000"),
			},
		},
		{
			Name: "Tinta dan Cartridge",
			Icon: "droplet",
			Problems: []models.Problem{
				problem("Tinta bocor", "Selang infus atau tabung bocor", models.SeverityMedium, "1-2 jam", "Rp 75.000 - 150.000"),
				problem("Cartridge tidak terbaca", "Chip cartridge rusak atau kotor", models.SeverityMedium, "1 jam", "Rp 50.000 - 200.000"),
			},
		},
	}
	for _, c := range categories {
		filter := bson.M{"name": c.Name}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":       primitive.NewObjectID().Hex(),
				"name":      c.Name,
				"icon":      c.Icon,
				"problems":  c.Problems,
				"is_active": true,
				"createdAt": now,
				"updatedAt": now,
			},
		}
		if _, err := cols.ProblemCategories.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed category %s: %v", c.Name, err)
		}
	}

	technicians := []seedTechnician{
		{Name: "Budi Santoso", Phone: "081234567801", Specialization: []string{"inkjet", "infus"}, ExperienceYears: 8, Rating: 4.8},
		{Name: "Agus Prasetyo", Phone: "081234567802", Specialization: []string{"laser", "fotokopi"}, ExperienceYears: 6, Rating: 4.6},
		{Name: "Dewi Lestari", Phone: "081234567803", Specialization: []string{"inkjet", "dot-matrix"}, ExperienceYears: 5, Rating: 4.7},
	}
	for _, t := range technicians {
		filter := bson.M{"name": t.Name}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":             primitive.NewObjectID().Hex(),
				"name":            t.Name,
				"phone":           t.Phone,
				"specialization":  t.Specialization,
				"experienceYears": t.ExperienceYears,
				"rating":          t.Rating,
				"is_active":       true,
				"createdAt":       now,
				"updatedAt":       now,
			},
		}
		if _, err := cols.Technicians.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed technician %s: %v", t.Name, err)
		}
	}

	adminUser := envOrDefault("ADMIN_USER", "admin")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		log.Println("seed admin: ADMIN_PASSWORD missing, skipping")
	} else if err := seedAdminUser(ctx, cols, adminUser, envOrDefault("ADMIN_EMAIL", ""), adminPassword, cfg.Timezone); err != nil {
		log.Fatalf("seed admin error for %s: %v", adminUser, err)
	}

	log.Println("seed completed")
}

func brandModels(printerType string, names ...string) []models.PrinterModel {
	items := make([]models.PrinterModel, 0, len(names))
	for _, name := range names {
		items = append(items, models.PrinterModel{
			ID:   utils.Slugify(name),
			Name: name,
			Type: printerType,
		})
	}
	return items
}

func problem(name, description, severity, estimatedTime, estimatedCost string) models.Problem {
	return models.Problem{
		ID:            utils.Slugify(name),
		Name:          name,
		Description:   description,
		Severity:      severity,
		EstimatedTime: estimatedTime,
		EstimatedCost: estimatedCost,
	}
}

func seedAdminUser(ctx context.Context, cols *db.Collections, username, email, password string, loc *time.Location) error {
	if cols == nil || cols.Users == nil {
		return nil
	}
	if username == "" || password == "" {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	filter := bson.M{"username": username}
	update := adminUserUpdate(username, email, hash, time.Now().In(loc))
	_, err = cols.Users.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// adminUserUpdate builds the upsert document. A field may appear in only one
// update operator; email lives in $set, which also applies on insert.
func adminUserUpdate(username, email, hash string, now time.Time) bson.M {
	set := bson.M{
		"passwordHash": hash,
		"role":         models.UserRoleAdmin,
		"updatedAt":    now,
	}
	if email != "" {
		set["email"] = email
	}
	return bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID().Hex(),
			"username":  username,
			"createdAt": now,
		},
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
