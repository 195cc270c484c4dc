package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gudangmaju/motorparts-api/internal/domain"
	"github.com/gudangmaju/motorparts-api/internal/domain/entity"
	"github.com/gudangmaju/motorparts-api/internal/domain/repository"
)

var _ repository.PartRepository = (*PartRepo)(nil)

// partDoc forma persistida de un repuesto. El precio se guarda como string
// para no perder precisión decimal en BSON.
type partDoc struct {
	ID              string    `bson:"_id"`
	Name            string    `bson:"name"`
	NameKey         string    `bson:"name_key"`
	Quantity        int64     `bson:"quantity"`
	Price           string    `bson:"price"`
	StorageLocation string    `bson:"storage_location"`
	Category        string    `bson:"category"`
	MinStock        int64     `bson:"min_stock"`
	Barcode         *string   `bson:"barcode,omitempty"`
	CreatedAt       time.Time `bson:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func toPartDoc(p *entity.Part) *partDoc {
	doc := &partDoc{
		ID:              p.ID,
		Name:            p.Name,
		NameKey:         p.NameKey,
		Quantity:        p.Quantity,
		Price:           p.Price.String(),
		StorageLocation: p.StorageLocation,
		Category:        p.Category,
		MinStock:        p.MinStock,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Barcode != "" {
		doc.Barcode = &p.Barcode
	}
	return doc
}

func (d *partDoc) toEntity() (*entity.Part, error) {
	price, err := decimal.NewFromString(d.Price)
	if err != nil {
		return nil, fmt.Errorf("parse part price %q: %w", d.Price, err)
	}
	p := &entity.Part{
		ID:              d.ID,
		Name:            d.Name,
		NameKey:         d.NameKey,
		Quantity:        d.Quantity,
		Price:           price,
		StorageLocation: d.StorageLocation,
		Category:        d.Category,
		MinStock:        d.MinStock,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.Barcode != nil {
		p.Barcode = *d.Barcode
	}
	return p, nil
}

// PartRepo implementación de PartRepository sobre MongoDB.
type PartRepo struct {
	coll *mongo.Collection
}

// NewPartRepository construye el adaptador de repuestos.
func NewPartRepository(client *Client) *PartRepo {
	return &PartRepo{coll: client.db.Collection(collParts)}
}

// Create inserta un repuesto nuevo.
func (r *PartRepo) Create(ctx context.Context, part *entity.Part) error {
	_, err := r.coll.InsertOne(ctx, toPartDoc(part))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateBarcode
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto por ID. Devuelve (nil, nil) si no existe.
func (r *PartRepo) GetByID(ctx context.Context, id string) (*entity.Part, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByNameKey obtiene un repuesto por su clave de nombre normalizada.
func (r *PartRepo) GetByNameKey(ctx context.Context, nameKey string) (*entity.Part, error) {
	return r.findOne(ctx, bson.M{"name_key": nameKey})
}

// GetByBarcode obtiene un repuesto por código de barras.
func (r *PartRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Part, error) {
	return r.findOne(ctx, bson.M{"barcode": barcode})
}

// GetForUpdate obtiene un repuesto para modificarlo. Dentro de una sesión
// transaccional Mongo toma locks de documento en la primera escritura, así
// que la lectura no necesita un lock explícito como en SQL.
func (r *PartRepo) GetForUpdate(ctx context.Context, id string) (*entity.Part, error) {
	return r.GetByID(ctx, id)
}

// List devuelve una página de repuestos aplicando filtros opcionales.
func (r *PartRepo) List(ctx context.Context, filter repository.PartListFilter) ([]*entity.Part, error) {
	query := bson.M{}
	if filter.Search != "" {
		query["name"] = bson.M{"$regex": primitive.Regex{Pattern: filter.Search, Options: "i"}}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.StorageLocation != "" {
		query["storage_location"] = filter.StorageLocation
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(filter.Limit)).
		SetSkip(int64(filter.Offset))
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find parts: %w", err)
	}
	return decodeParts(ctx, cursor)
}

// ListLocations devuelve las ubicaciones de almacenamiento distintas en uso.
func (r *PartRepo) ListLocations(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "storage_location", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("distinct locations: %w", err)
	}
	return collectLocations(values), nil
}

// collectLocations filtra los valores de Distinct y los ordena: Distinct no
// garantiza orden y el adaptador de Postgres entrega ordenado.
func collectLocations(values []interface{}) []string {
	locations := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			locations = append(locations, s)
		}
	}
	sort.Strings(locations)
	return locations
}

// ListLowStock devuelve los repuestos cuyo stock está en o bajo su mínimo.
func (r *PartRepo) ListLowStock(ctx context.Context) ([]*entity.Part, error) {
	query := bson.M{"$expr": bson.M{"$lte": bson.A{"$quantity", "$min_stock"}}}
	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find low stock parts: %w", err)
	}
	return decodeParts(ctx, cursor)
}

// Update reemplaza el documento completo del repuesto.
func (r *PartRepo) Update(ctx context.Context, part *entity.Part) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": part.ID}, toPartDoc(part))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateBarcode
		}
		return fmt.Errorf("update part: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un repuesto por ID.
func (r *PartRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete part: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PartRepo) findOne(ctx context.Context, query bson.M) (*entity.Part, error) {
	var doc partDoc
	err := r.coll.FindOne(ctx, query).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find part: %w", err)
	}
	return doc.toEntity()
}

func decodeParts(ctx context.Context, cursor *mongo.Cursor) ([]*entity.Part, error) {
	defer cursor.Close(ctx)
	var parts []*entity.Part
	for cursor.Next(ctx) {
		var doc partDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode part: %w", err)
		}
		part, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate parts: %w", err)
	}
	return parts, nil
}
