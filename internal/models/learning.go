package models

// LessonType represents the kind of content a lesson carries
type LessonType string

const (
	LessonTypeText        LessonType = "text"
	LessonTypeVideo       LessonType = "video"
	LessonTypeInteractive LessonType = "interactive"
	LessonTypeCode        LessonType = "code"
)

// ResourceType represents the kind of an external lesson resource
type ResourceType string

const (
	ResourceTypeDocumentation ResourceType = "documentation"
	ResourceTypeVideo         ResourceType = "video"
	ResourceTypeArticle       ResourceType = "article"
	ResourceTypeGithub        ResourceType = "github"
)

// DefaultModuleOrder is used for sorting modules which do not declare an order
const DefaultModuleOrder = 999

// CodeExample represents a code snippet attached to a lesson
type CodeExample struct {
	Language    string `json:"language"`
	Code        string `json:"code"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Resource represents an external link attached to a lesson
type Resource struct {
	Title string       `json:"title"`
	URL   string       `json:"url"`
	Type  ResourceType `json:"type"`
}

// Question represents a single multiple choice quiz question
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Quiz represents the final quiz of a module
type Quiz struct {
	ID           string     `json:"id"`
	Questions    []Question `json:"questions"`
	PassingScore int        `json:"passingScore"`
}

// Lesson represents a lesson inside a module
type Lesson struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Type         LessonType    `json:"type"`
	Content      string        `json:"content"`
	CodeExamples []CodeExample `json:"codeExamples,omitempty"`
	Resources    []Resource    `json:"resources,omitempty"`
}

// Module represents a unit of learning content of a learning area.
//
// Order is a pointer so that files without an "order" field can be told apart from order 0.
type Module struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Order            *int     `json:"order,omitempty"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
	Lessons          []Lesson `json:"lessons"`
	Quiz             *Quiz    `json:"quiz,omitempty"`
}

// SortKey returns the order used for presentation of the module
func (m *Module) SortKey() int {
	if m.Order == nil {
		return DefaultModuleOrder
	}
	return *m.Order
}

// LearningArea represents one of the fixed technology domains
type LearningArea struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Color          string   `json:"color"`
	Icon           string   `json:"icon"`
	ModuleCount    int      `json:"moduleCount"`
	EstimatedHours int      `json:"estimatedHours"`
	Skills         []string `json:"skills"`
}

// Learning area identifiers
const (
	AreaDevOps          = "devops"
	AreaDevSecOps       = "devsecops"
	AreaDataEngineering = "data-engineering"
	AreaFullstack       = "fullstack"
	AreaAIML            = "ai-ml"
)

// LearningAreas lists all learning areas in presentation order
var LearningAreas = []LearningArea{
	{
		ID:             AreaDevOps,
		Title:          "DevOps",
		Description:    "Master CI/CD, containerization, orchestration, and infrastructure as code",
		Color:          "vtb-accent-blue",
		Icon:           "🚀",
		ModuleCount:    15,
		EstimatedHours: 40,
		Skills:         []string{"Docker", "Kubernetes", "CI/CD", "Terraform", "AWS/Azure/GCP", "Monitoring"},
	},
	{
		ID:             AreaDevSecOps,
		Title:          "DevSecOps",
		Description:    "Integrate security practices into your DevOps pipeline and workflows",
		Color:          "vtb-dark-green",
		Icon:           "🔒",
		ModuleCount:    12,
		EstimatedHours: 35,
		Skills:         []string{"Security Scanning", "SAST/DAST", "Container Security", "Compliance", "Threat Modeling"},
	},
	{
		ID:             AreaDataEngineering,
		Title:          "Data Engineering",
		Description:    "Build scalable data pipelines and work with big data technologies",
		Color:          "vtb-accent-orange",
		Icon:           "📊",
		ModuleCount:    18,
		EstimatedHours: 50,
		Skills:         []string{"Apache Spark", "Airflow", "Data Lakes", "ETL/ELT", "SQL/NoSQL", "Stream Processing"},
	},
	{
		ID:             AreaFullstack,
		Title:          "Full Stack Development",
		Description:    "Develop end-to-end applications with modern web technologies",
		Color:          "vtb-accent-red",
		Icon:           "💻",
		ModuleCount:    20,
		EstimatedHours: 60,
		Skills:         []string{"React", "Node.js", "TypeScript", "REST/GraphQL", "Databases", "Cloud Deployment"},
	},
	{
		ID:             AreaAIML,
		Title:          "AI/ML Engineering",
		Description:    "Explore machine learning, deep learning, and artificial intelligence",
		Color:          "vtb-accent-pink",
		Icon:           "🤖",
		ModuleCount:    16,
		EstimatedHours: 45,
		Skills:         []string{"Python", "TensorFlow/PyTorch", "MLOps", "Computer Vision", "NLP", "Model Deployment"},
	},
}

// IsValidLearningArea reports whether id names one of the known learning areas
func IsValidLearningArea(id string) bool {
	for _, area := range LearningAreas {
		if area.ID == id {
			return true
		}
	}
	return false
}

// LearningAreaIDs returns identifiers of all learning areas in presentation order
func LearningAreaIDs() []string {
	ids := make([]string, 0, len(LearningAreas))
	for _, area := range LearningAreas {
		ids = append(ids, area.ID)
	}
	return ids
}

// ProgressUpdateRequest represents a learning progress update.
// Progress is not persisted, the payload is accepted as is.
type ProgressUpdateRequest map[string]string
