package model

// Peer 社区成员
type Peer struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// Forum 讨论组
type Forum struct {
	Name        string `json:"name"`
	Members     int    `json:"members"`
	Description string `json:"description"`
}

type CommunityDirectory struct {
	Peers  []Peer  `json:"peers"`
	Forums []Forum `json:"forums"`
}

// 社区目录是静态数据
var (
	DefaultPeers = []Peer{
		{Name: "Alice Johnson", Role: "Frontend Developer", Avatar: "https://picsum.photos/id/1011/200/200"},
		{Name: "Bob Williams", Role: "Backend Developer", Avatar: "https://picsum.photos/id/1012/200/200"},
		{Name: "Charlie Brown", Role: "Full-Stack Developer", Avatar: "https://picsum.photos/id/1013/200/200"},
		{Name: "Diana Miller", Role: "UI/UX Designer", Avatar: "https://picsum.photos/id/1014/200/200"},
	}

	DefaultForums = []Forum{
		{Name: "JavaScript Mastery", Members: 1250, Description: "Discussions about advanced JS topics."},
		{Name: "React & Next.js", Members: 2340, Description: "For all things related to React and Next.js."},
		{Name: "AI in Development", Members: 875, Description: "Integrating AI into modern applications."},
		{Name: "Career Growth", Members: 3120, Description: "Share tips on career development in tech."},
	}
)
