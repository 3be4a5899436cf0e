package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/GriffinCanCode/Linkup/backend/internal/domain/post"
)

type commentDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"createdAt"`
}

type postDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	AuthorID    string             `bson:"author"`
	Description string             `bson:"description"`
	Image       string             `bson:"image,omitempty"`
	Likes       []string           `bson:"like"`
	Comments    []commentDoc       `bson:"comment"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d postDoc) toPost() *post.Post {
	p := &post.Post{
		ID:          d.ID.Hex(),
		AuthorID:    d.AuthorID,
		Description: d.Description,
		Image:       d.Image,
		Likes:       d.Likes,
		Comments:    make([]post.Comment, 0, len(d.Comments)),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if p.Likes == nil {
		p.Likes = []string{}
	}
	for _, c := range d.Comments {
		p.Comments = append(p.Comments, post.Comment(c))
	}
	return p
}

// PostStore stores posts in the posts collection
type PostStore struct {
	coll *mongo.Collection
}

func (s *PostStore) Create(ctx context.Context, p *post.Post) error {
	d := postDoc{
		ID:          primitive.NewObjectID(),
		AuthorID:    p.AuthorID,
		Description: p.Description,
		Image:       p.Image,
		Likes:       []string{},
		Comments:    []commentDoc{},
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if _, err := s.coll.InsertOne(ctx, d); err != nil {
		return mapErr(err, "post")
	}
	p.ID = d.ID.Hex()
	return nil
}

func (s *PostStore) Get(ctx context.Context, id string) (*post.Post, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var d postDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d); err != nil {
		return nil, mapErr(err, "post")
	}
	return d.toPost(), nil
}

func (s *PostStore) List(ctx context.Context, limit int) ([]*post.Post, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, findOptions(limit))
	if err != nil {
		return nil, mapErr(err, "posts")
	}
	docs, err := decodeAll[postDoc](ctx, cur)
	if err != nil {
		return nil, mapErr(err, "posts")
	}

	out := make([]*post.Post, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toPost())
	}
	return out, nil
}

func (s *PostStore) ToggleLike(ctx context.Context, postID, userID string) (*post.Post, bool, error) {
	current, err := s.Get(ctx, postID)
	if err != nil {
		return nil, false, err
	}

	liked := !current.LikedBy(userID)
	op := "$addToSet"
	if !liked {
		op = "$pull"
	}
	p, err := s.update(ctx, postID, bson.M{
		op:     bson.M{"like": userID},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return nil, false, err
	}
	return p, liked, nil
}

func (s *PostStore) AddComment(ctx context.Context, postID string, c post.Comment) (*post.Post, error) {
	return s.update(ctx, postID, bson.M{
		"$push": bson.M{"comment": commentDoc(c)},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
}

func (s *PostStore) update(ctx context.Context, id string, update bson.M) (*post.Post, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var d postDoc
	if err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, returnAfter()).Decode(&d); err != nil {
		return nil, mapErr(err, "post")
	}
	return d.toPost(), nil
}
