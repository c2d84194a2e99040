package model

import "time"

// Post 社区帖子
type Post struct {
	ID          string    `gorm:"primaryKey;size:36" json:"_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	AuthorID    string    `gorm:"index;size:36;not null" json:"-"`
	Author      *User     `gorm:"foreignKey:AuthorID" json:"-"`
	IsAnonymous bool      `gorm:"default:false" json:"isAnonymous"`
	Likes       int       `gorm:"default:0" json:"likes"`
	Comments    []Comment `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Comment 帖子评论
type Comment struct {
	ID          string    `gorm:"primaryKey;size:36" json:"_id"`
	PostID      string    `gorm:"index;size:36;not null" json:"-"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	AuthorID    string    `gorm:"index;size:36;not null" json:"-"`
	Author      *User     `gorm:"foreignKey:AuthorID" json:"-"`
	IsAnonymous bool      `gorm:"default:false" json:"isAnonymous"`
	Likes       int       `gorm:"default:0" json:"likes"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}

func (Comment) TableName() string {
	return "comments"
}
