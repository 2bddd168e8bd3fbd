package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sngm3741/student-survey/api/internal/survey/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// SurveyRepository はアンケートを MongoDB で扱う実装リポジトリ。
type SurveyRepository struct {
	surveys  *mongo.Collection
	counters *mongo.Collection
}

// NewSurveyRepository はアンケート・カウンタの 2 コレクションを束縛したリポジトリを生成する。
func NewSurveyRepository(db *mongo.Database, surveyCollection, counterCollection string) *SurveyRepository {
	return &SurveyRepository{
		surveys:  db.Collection(surveyCollection),
		counters: db.Collection(counterCollection),
	}
}

// FindAll は登録順（_id 昇順）で全アンケートを返す。
func (r *SurveyRepository) FindAll(ctx context.Context) ([]domain.Survey, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.surveys.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	surveys := make([]domain.Survey, 0)
	for cursor.Next(ctx) {
		var doc SurveyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		survey, err := mapSurveyDocument(doc)
		if err != nil {
			return nil, err
		}
		surveys = append(surveys, survey)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return surveys, nil
}

// FindByID は単一アンケートを復元する。存在しない場合は nil を返す。
func (r *SurveyRepository) FindByID(ctx context.Context, id int64) (*domain.Survey, error) {
	var doc SurveyDocument
	err := r.surveys.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	survey, err := mapSurveyDocument(doc)
	if err != nil {
		return nil, err
	}
	return &survey, nil
}

// ExistsByID はドキュメント本体を取得せずに件数だけで存在確認する。
func (r *SurveyRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	count, err := r.surveys.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create は連番 ID を採番してアンケートを新規登録する。
func (r *SurveyRepository) Create(ctx context.Context, survey *domain.Survey) error {
	if survey == nil {
		return errors.New("survey payload is nil")
	}
	id, err := r.nextID(ctx)
	if err != nil {
		return fmt.Errorf("allocate survey id: %w", err)
	}
	now := time.Now().UTC()
	doc := mapDomainSurveyToDocument(survey)
	doc.ID = id
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if _, err := r.surveys.InsertOne(ctx, doc); err != nil {
		return err
	}
	survey.ID = id
	return nil
}

// Update はアンケートの全フィールドを差し替える。対象が存在しない場合は ErrSurveyNotFound を返す。
func (r *SurveyRepository) Update(ctx context.Context, survey *domain.Survey) error {
	if survey == nil {
		return errors.New("survey payload is nil")
	}
	if survey.ID == 0 {
		return errors.New("survey id is required")
	}
	update := buildSurveyUpdatePayload(mapDomainSurveyToDocument(survey))
	res, err := r.surveys.UpdateByID(ctx, survey.ID, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrSurveyNotFound
	}
	return nil
}

// DeleteByID は指定 ID のアンケートを削除する。
func (r *SurveyRepository) DeleteByID(ctx context.Context, id int64) error {
	_, err := r.surveys.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Ping は MongoDB への疎通確認を行う。
func (r *SurveyRepository) Ping(ctx context.Context) error {
	return r.surveys.Database().Client().Ping(ctx, readpref.Primary())
}

// nextID はカウンタドキュメントを $inc でアトミックに進め、新しい ID を返す。
func (r *SurveyRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var counter counterDocument
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": r.surveys.Name()},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// mapSurveyDocument は Mongo 文書をドメイン Survey へ変換する。
func mapSurveyDocument(doc SurveyDocument) (domain.Survey, error) {
	date, err := domain.ParseDate(doc.DateOfSurvey)
	if err != nil {
		return domain.Survey{}, err
	}
	return domain.Survey{
		ID:                  doc.ID,
		FirstName:           doc.FirstName,
		LastName:            doc.LastName,
		StreetAddress:       doc.StreetAddress,
		City:                doc.City,
		State:               doc.State,
		Zip:                 doc.Zip,
		Telephone:           doc.Telephone,
		Email:               doc.Email,
		DateOfSurvey:        date,
		LikedMost:           doc.LikedMost,
		InterestSource:      domain.InterestSource(doc.InterestSource),
		RecommendLikelihood: domain.RecommendLikelihood(doc.RecommendLikelihood),
		Comments:            doc.Comments,
	}, nil
}

// mapDomainSurveyToDocument はドメイン Survey を Mongo 保存形式に射影する。
func mapDomainSurveyToDocument(survey *domain.Survey) SurveyDocument {
	var liked []string
	if len(survey.LikedMost) > 0 {
		liked = append(liked, survey.LikedMost...)
	}
	return SurveyDocument{
		ID:                  survey.ID,
		FirstName:           survey.FirstName,
		LastName:            survey.LastName,
		StreetAddress:       survey.StreetAddress,
		City:                survey.City,
		State:               survey.State,
		Zip:                 survey.Zip,
		Telephone:           survey.Telephone,
		Email:               survey.Email,
		DateOfSurvey:        survey.DateOfSurvey.String(),
		LikedMost:           liked,
		InterestSource:      survey.InterestSource.String(),
		RecommendLikelihood: survey.RecommendLikelihood.String(),
		Comments:            survey.Comments,
	}
}

// buildSurveyUpdatePayload は SurveyDocument を $set 用の BSON マップに変換する。
// 省略されたフィールドも含めて全項目を上書きする。
func buildSurveyUpdatePayload(doc SurveyDocument) bson.M {
	return bson.M{
		"firstName":           doc.FirstName,
		"lastName":            doc.LastName,
		"streetAddress":       doc.StreetAddress,
		"city":                doc.City,
		"state":               doc.State,
		"zip":                 doc.Zip,
		"telephone":           doc.Telephone,
		"email":               doc.Email,
		"dateOfSurvey":        doc.DateOfSurvey,
		"likedMost":           doc.LikedMost,
		"interestSource":      doc.InterestSource,
		"recommendLikelihood": doc.RecommendLikelihood,
		"comments":            doc.Comments,
		"updatedAt":           time.Now().UTC(),
	}
}
