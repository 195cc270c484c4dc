// seed carga el catálogo inicial del almacén: los repuestos de arranque y
// los tres usuarios base (admin, kepala, manajer). Pasa por los use cases,
// así que cada repuesto deja su asiento de entrada en el libro.
//
// Uso: go run ./cmd/seed
// Es idempotente por nombre: repetirlo reabastece en vez de duplicar.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gudangmaju/motorparts-api/internal/application/auth"
	"github.com/gudangmaju/motorparts-api/internal/application/dto"
	"github.com/gudangmaju/motorparts-api/internal/application/inventory"
	"github.com/gudangmaju/motorparts-api/internal/domain"
	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
	"github.com/gudangmaju/motorparts-api/internal/infrastructure/mongodb"
	"github.com/gudangmaju/motorparts-api/internal/infrastructure/postgres"
	"github.com/gudangmaju/motorparts-api/pkg/config"
	"github.com/gudangmaju/motorparts-api/pkg/logger"
)

const seedActor = "seed"

type seedPart struct {
	name     string
	quantity int64
	price    int64
	location string
	category string
	minStock int64
}

var seedParts = []seedPart{
	{"Spark Plug NGK CR7HSA", 50, 52500, "Shelf A-1", entity.CategoryEngineParts, 10},
	{"Oil Filter Honda OEM", 30, 134850, "Shelf B-2", entity.CategoryEngineParts, 8},
	{"Brake Pads Front Set", 25, 375000, "Shelf C-5", entity.CategoryBraking, 5},
	{"LED Headlight Bulb H4", 15, 299250, "Electrical A-1", entity.CategoryElectrical, 5},
	{"Chain Lube Motul C2+", 40, 187500, "Fluids Rack 1", entity.CategoryFluidsChemicals, 10},
	{"Motorcycle Cover Waterproof", 10, 525000, "Accessories Bin", entity.CategoryAccessories, 3},
	{"Handlebar Grips Yamaha", 20, 236250, "Shelf D-3", entity.CategoryBodyFrame, 5},
	{"Tire Pirelli Diablo Rosso III", 5, 2250000, "Tire Rack 2", entity.CategoryWheelsTires, 2},
	{"Air Filter Twin Air", 18, 334500, "Shelf A-2", entity.CategoryEngineParts, 5},
	{"Battery Yuasa YTZ10S", 12, 1432500, "Electrical B-4", entity.CategoryElectrical, 4},
	{"Kabel Rem Belakang", 22, 45000, "Gudang Kabel", entity.CategoryBraking, 5},
	{"Bohlam Sein (1 pasang)", 50, 25000, "Rak Bohlam", entity.CategoryElectrical, 10},
	{"Spion Standar Kanan", 15, 75000, "Lemari Spion", entity.CategoryBodyFrame, 4},
	{"Oli Mesin Federal Oil", 30, 65000, "Rak Oli", entity.CategoryFluidsChemicals, 10},
	{"Kampas Kopling Set", 10, 250000, "Kotak Kopling", entity.CategoryEngineParts, 3},
}

var seedUsers = []dto.RegisterRequest{
	{Username: "admin", Password: "admin123", Role: entity.RoleAdmin},
	{Username: "kepala", Password: "kepala123", Role: entity.RoleKepala},
	{Username: "manajer", Password: "manajer123", Role: entity.RoleManajer},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	parts, users, txRunner, closeFn, err := buildRepos(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("conexión al almacenamiento")
	}
	defer closeFn(ctx)

	stockUC := inventory.NewStockUseCase(txRunner, parts, nil)
	authUC := auth.NewUseCase(users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	for _, u := range seedUsers {
		if _, err := authUC.Register(ctx, u); err != nil {
			if errors.Is(err, domain.ErrUsernameTaken) {
				log.Info().Str("username", u.Username).Msg("usuario ya existe, omitido")
				continue
			}
			log.Fatal().Err(err).Str("username", u.Username).Msg("crear usuario")
		}
		log.Info().Str("username", u.Username).Str("role", u.Role).Msg("usuario creado")
	}

	for _, p := range seedParts {
		out, err := stockUC.AddPart(ctx, dto.PartInput{
			Name:            p.name,
			Quantity:        p.quantity,
			Price:           decimal.NewFromInt(p.price),
			StorageLocation: p.location,
			Category:        p.category,
			MinStock:        p.minStock,
		}, seedActor)
		if err != nil {
			log.Fatal().Err(err).Str("part", p.name).Msg("crear repuesto")
		}
		log.Info().
			Str("part", p.name).
			Str("transaction_id", out.TransactionID).
			Bool("restocked", out.Restocked).
			Msg("repuesto cargado")
	}

	log.Info().Int("parts", len(seedParts)).Int("users", len(seedUsers)).Msg("seed completado")
}

func buildRepos(ctx context.Context, cfg *config.Config) (repository.PartRepository, repository.UserRepository, inventory.TxRunner, func(context.Context), error) {
	switch cfg.Storage.Driver {
	case config.StorageMongoDB:
		client, err := mongodb.NewClient(ctx, cfg)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			return nil, nil, nil, nil, err
		}
		closeFn := func(ctx context.Context) { _ = client.Close(ctx) }
		return mongodb.NewPartRepository(client), mongodb.NewUserRepository(client), mongodb.NewTxRunner(client), closeFn, nil
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		closeFn := func(context.Context) { pool.Close() }
		return postgres.NewPartRepository(pool), postgres.NewUserRepository(pool), postgres.NewTxRunner(pool), closeFn, nil
	}
}
