package service

import (
	"skillpath_backend/internal/model"
	"strings"
)

// CommunityService 社区目录是静态数据，只支持关键字过滤
type CommunityService struct {
	peers  []model.Peer
	forums []model.Forum
}

func NewCommunityService() *CommunityService {
	return &CommunityService{
		peers:  model.DefaultPeers,
		forums: model.DefaultForums,
	}
}

// Search 按名称、角色、描述做不区分大小写的子串匹配，空关键字返回全部
func (s *CommunityService) Search(query string) model.CommunityDirectory {
	q := strings.ToLower(strings.TrimSpace(query))

	dir := model.CommunityDirectory{
		Peers:  []model.Peer{},
		Forums: []model.Forum{},
	}
	for _, p := range s.peers {
		if q == "" || containsFold(q, p.Name, p.Role) {
			dir.Peers = append(dir.Peers, p)
		}
	}
	for _, f := range s.forums {
		if q == "" || containsFold(q, f.Name, f.Description) {
			dir.Forums = append(dir.Forums, f)
		}
	}
	return dir
}

func containsFold(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
