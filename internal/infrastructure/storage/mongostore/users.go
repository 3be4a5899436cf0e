package mongostore

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/user"
	"github.com/GriffinCanCode/Linkup/backend/internal/shared/errs"
)

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FirstName    string             `bson:"firstName"`
	LastName     string             `bson:"lastName"`
	UserName     string             `bson:"userName"`
	Email        string             `bson:"email"`
	Password     string             `bson:"password"`
	ProfileImage string             `bson:"profileImage"`
	CoverImage   string             `bson:"coverImage"`
	Headline     string             `bson:"headline"`
	Location     string             `bson:"location"`
	Gender       string             `bson:"gender,omitempty"`
	Skills       []string           `bson:"skills"`
	Education    []user.Education   `bson:"education"`
	Experience   []user.Experience  `bson:"experience"`
	Connections  []string           `bson:"connection"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func toUserDoc(u *user.User) userDoc {
	d := userDoc{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		UserName:     u.UserName,
		Email:        u.Email,
		Password:     u.PasswordHash,
		ProfileImage: u.ProfileImage,
		CoverImage:   u.CoverImage,
		Headline:     u.Headline,
		Location:     u.Location,
		Gender:       u.Gender,
		Skills:       u.Skills,
		Education:    u.Education,
		Experience:   u.Experience,
		Connections:  u.Connections,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if d.Connections == nil {
		d.Connections = []string{}
	}
	return d
}

func (d userDoc) toUser() *user.User {
	return &user.User{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		UserName:     d.UserName,
		Email:        d.Email,
		PasswordHash: d.Password,
		ProfileImage: d.ProfileImage,
		CoverImage:   d.CoverImage,
		Headline:     d.Headline,
		Location:     d.Location,
		Gender:       d.Gender,
		Skills:       d.Skills,
		Education:    d.Education,
		Experience:   d.Experience,
		Connections:  d.Connections,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// UserStore stores users in the users collection
type UserStore struct {
	coll *mongo.Collection
}

func (s *UserStore) Create(ctx context.Context, u *user.User) error {
	d := toUserDoc(u)
	d.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return mapErr(err, "user")
	}
	u.ID = d.ID.Hex()
	return nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*user.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *UserStore) GetMany(ctx context.Context, ids []string) ([]*user.User, error) {
	return s.find(ctx, bson.M{"_id": bson.M{"$in": objectIDs(ids)}}, 0)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *UserStore) GetByUserName(ctx context.Context, userName string) (*user.User, error) {
	return s.findOne(ctx, bson.M{"userName": userName})
}

func (s *UserStore) Update(ctx context.Context, u *user.User) error {
	oid, err := objectID(u.ID)
	if err != nil {
		return err
	}

	d := toUserDoc(u)
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"firstName":    d.FirstName,
		"lastName":     d.LastName,
		"userName":     d.UserName,
		"profileImage": d.ProfileImage,
		"coverImage":   d.CoverImage,
		"headline":     d.Headline,
		"location":     d.Location,
		"gender":       d.Gender,
		"skills":       d.Skills,
		"education":    d.Education,
		"experience":   d.Experience,
		"updatedAt":    d.UpdatedAt,
	}})
	if err != nil {
		return mapErr(err, "user")
	}
	if res.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (s *UserStore) Search(ctx context.Context, query string, limit int) ([]*user.User, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"firstName": pattern},
		bson.M{"lastName": pattern},
		bson.M{"userName": pattern},
		bson.M{"skills": pattern},
	}}
	return s.find(ctx, filter, limit)
}

func (s *UserStore) ListExcluding(ctx context.Context, exclude []string, limit int) ([]*user.User, error) {
	return s.find(ctx, bson.M{"_id": bson.M{"$nin": objectIDs(exclude)}}, limit)
}

func (s *UserStore) AddConnection(ctx context.Context, a, b string) error {
	return s.link(ctx, a, b, "$addToSet")
}

func (s *UserStore) RemoveConnection(ctx context.Context, a, b string) error {
	return s.link(ctx, a, b, "$pull")
}

func (s *UserStore) link(ctx context.Context, a, b, op string) error {
	for _, pair := range [][2]string{{a, b}, {b, a}} {
		oid, err := objectID(pair[0])
		if err != nil {
			return err
		}
		res, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{op: bson.M{"connection": pair[1]}})
		if err != nil {
			return mapErr(err, "user")
		}
		if res.MatchedCount == 0 {
			return errs.ErrNotFound
		}
	}
	return nil
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*user.User, error) {
	var d userDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, mapErr(err, "user")
	}
	return d.toUser(), nil
}

func (s *UserStore) find(ctx context.Context, filter bson.M, limit int) ([]*user.User, error) {
	cur, err := s.coll.Find(ctx, filter, findOptions(limit))
	if err != nil {
		return nil, mapErr(err, "users")
	}
	docs, err := decodeAll[userDoc](ctx, cur)
	if err != nil {
		return nil, mapErr(err, "users")
	}

	out := make([]*user.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toUser())
	}
	return out, nil
}
