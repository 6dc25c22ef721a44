package domain

import (
	"context"
	"strings"
)

// Album 外部专辑搜索服务返回的专辑摘要
type Album struct {
	ID          string        `bson:"id" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Artists     []AlbumArtist `bson:"artists" json:"artists"`
	Images      []AlbumImage  `bson:"images" json:"images"`
	ReleaseDate string        `bson:"release_date" json:"release_date"`
	TotalTracks int           `bson:"total_tracks" json:"total_tracks"`
}

type AlbumArtist struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

type AlbumImage struct {
	URL    string `bson:"url" json:"url"`
	Height int    `bson:"height,omitempty" json:"height,omitempty"`
	Width  int    `bson:"width,omitempty" json:"width,omitempty"`
}

// ArtistNames 逗号拼接全部艺术家名称
func (a *Album) ArtistNames() string {
	names := make([]string, 0, len(a.Artists))
	for _, artist := range a.Artists {
		names = append(names, artist.Name)
	}
	return strings.Join(names, ", ")
}

// ImageURL 取第一张封面图，没有则返回空串
func (a *Album) ImageURL() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0].URL
}

// AlbumSearchProvider 外部专辑搜索服务
// 鉴权（token获取与刷新）由实现自行处理，调用方只关心按关键词搜索
type AlbumSearchProvider interface {
	SearchAlbums(ctx context.Context, query string) ([]Album, error)
}
