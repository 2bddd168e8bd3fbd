package mongo

import "time"

// SurveyDocument は MongoDB 上でのアンケートスキーマを Go 構造体として表現したもの。
// _id はカウンタコレクションから払い出す連番整数。
type SurveyDocument struct {
	ID                  int64     `bson:"_id"`
	FirstName           string    `bson:"firstName"`
	LastName            string    `bson:"lastName"`
	StreetAddress       string    `bson:"streetAddress"`
	City                string    `bson:"city"`
	State               string    `bson:"state"`
	Zip                 string    `bson:"zip"`
	Telephone           string    `bson:"telephone"`
	Email               string    `bson:"email"`
	DateOfSurvey        string    `bson:"dateOfSurvey"`
	LikedMost           []string  `bson:"likedMost,omitempty"`
	InterestSource      string    `bson:"interestSource"`
	RecommendLikelihood string    `bson:"recommendLikelihood"`
	Comments            string    `bson:"comments"`
	CreatedAt           time.Time `bson:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt"`
}

// counterDocument は連番 ID を払い出すためのカウンタ。_id は対象コレクション名。
type counterDocument struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}
