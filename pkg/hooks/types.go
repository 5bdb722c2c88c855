package hooks

// Hook names a point in project generation at which template scripts run.
type Hook string

// Supported hooks.
const (
	PreGenProject  Hook = "pre_gen_project"
	PostGenProject Hook = "post_gen_project"
)

// ValidHooks lists the hooks a template may provide, in execution order.
var ValidHooks = []Hook{PreGenProject, PostGenProject}

// IsValid reports whether h is a hook cutter knows how to run.
func (h Hook) IsValid() bool {
	for _, valid := range ValidHooks {
		if h == valid {
			return true
		}
	}
	return false
}

// Context is what a hook script gets to see about the generation it runs in.
type Context struct {
	Hook        Hook
	TemplateDir string
	ProjectDir  string
	Vars        map[string]string
}
