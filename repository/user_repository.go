package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Super-Badmen-Viper/PitchPlease/domain"
	"github.com/Super-Badmen-Viper/PitchPlease/mongo"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	db         mongo.Database
	collection string
}

// NewUserRepository MongoDB后端的账户仓库
func NewUserRepository(db mongo.Database, collection string) domain.UserRepository {
	return &userRepository{
		db:         db,
		collection: collection,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	coll := r.db.Collection(r.collection)
	// 邮箱查重不区分大小写，配合 email_unique 索引双重防护
	existing, err := r.GetByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicate
	}
	if _, err := coll.InsertOne(ctx, user); err != nil {
		if driver.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("创建账户失败: %w", err)
	}
	return nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	coll := r.db.Collection(r.collection)
	filter := bson.M{"email": bson.M{
		"$regex":   "^" + escapeRegex(email) + "$",
		"$options": "i",
	}}
	var user domain.User
	err := coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询账户失败: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	coll := r.db.Collection(r.collection)
	var user domain.User
	err := coll.FindOne(ctx, bson.M{"id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询账户失败: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Fetch(ctx context.Context) ([]domain.User, error) {
	coll := r.db.Collection(r.collection)
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			fmt.Printf("error closing cursor: %v\n", err)
		}
	}()

	results := make([]domain.User, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("解码错误: %w", err)
	}
	return results, nil
}

// escapeRegex 转义邮箱中的正则元字符（主要是 . 和 +）
func escapeRegex(s string) string {
	replacer := strings.NewReplacer(
		".", "\\.",
		"+", "\\+",
		"*", "\\*",
		"?", "\\?",
		"(", "\\(",
		")", "\\)",
		"[", "\\[",
		"]", "\\]",
		"$", "\\$",
		"^", "\\^",
	)
	return replacer.Replace(s)
}
