package model

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/limaJavier/degreeplan/pkg/catalog"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Engine assembles multi-semester plans from a catalog
type Engine struct {
	accessor   catalog.Accessor
	planner    Planner
	categories []GERCategory
	ceiling    int
	maxNodes   int
	logger     *zap.Logger
}

type Option func(engine *Engine)

// WithPlanner selects the semester-assignment strategy. The backtracking planner is the default
func WithPlanner(planner Planner) Option {
	return func(engine *Engine) { engine.planner = planner }
}

func WithLogger(logger *zap.Logger) Option {
	return func(engine *Engine) { engine.logger = logger }
}

func WithGERCategories(categories []GERCategory) Option {
	return func(engine *Engine) { engine.categories = categories }
}

func WithGERCeiling(ceiling int) Option {
	return func(engine *Engine) { engine.ceiling = ceiling }
}

// WithMaxNodes bounds the section search of PlanNextSemester
func WithMaxNodes(maxNodes int) Option {
	return func(engine *Engine) { engine.maxNodes = maxNodes }
}

func NewEngine(accessor catalog.Accessor, options ...Option) (*Engine, error) {
	engine := &Engine{
		accessor:   accessor,
		categories: DefaultGERCategories(),
		ceiling:    DefaultGERCeiling,
		maxNodes:   DefaultMaxNodes,
		logger:     zap.NewNop(),
	}
	for _, option := range options {
		option(engine)
	}

	if engine.planner == nil {
		engine.planner = NewBacktrackingPlanner(engine.maxNodes)
	}
	if engine.ceiling <= 0 {
		return nil, fmt.Errorf("GER credit ceiling must be positive: %v", engine.ceiling)
	} else if err := validateCategories(engine.categories); err != nil {
		return nil, err
	}
	return engine, nil
}

// run holds the state of one invocation; nothing survives it
type run struct {
	engine   *Engine
	catalog  *catalog.Cache
	logger   *zap.Logger
	warnings []Warning
}

func (engine *Engine) newRun(major string) *run {
	return &run{
		engine:   engine,
		catalog:  catalog.NewCache(engine.accessor),
		logger:   engine.logger.With(zap.String("major", major)),
		warnings: make([]Warning, 0),
	}
}

func (run *run) report(warning Warning) {
	run.logger.Warn(warning.Message, zap.String("kind", string(warning.Kind)), zap.String("course", warning.Course))
	run.warnings = append(run.warnings, warning)
}

// Plan builds the semester schedule of a major. Catalog misses degrade the result with warnings;
// only invalid requests and infrastructure failures return an error
func (engine *Engine) Plan(ctx context.Context, request Request) (Result, error) {
	if err := request.Validate(); err != nil {
		return Result{}, err
	}

	run := engine.newRun(request.Major)
	result, err := run.plan(ctx, request)
	if err != nil {
		return Result{}, err
	}
	result.Stats.CatalogLookups = run.catalog.Lookups
	return result, nil
}

func (run *run) plan(ctx context.Context, request Request) (Result, error) {
	result := Result{Major: strings.TrimSpace(request.Major), Semesters: []SemesterSchedule{}}

	major, err := run.catalog.FetchMajorRequirements(ctx, result.Major)
	if errors.Is(err, catalog.ErrNotFound) {
		run.logger.Warn("major not found")
		result.Status = StatusMajorNotFound
		result.Warnings = append(run.warnings, Warning{Kind: WarningNotFound, Message: "major " + result.Major + " is not in the catalog"})
		return result, nil
	} else if err != nil {
		return Result{}, fmt.Errorf("cannot fetch major requirements: %w", err)
	}

	taken := request.takenSet()
	seeds, err := run.selectCourses(ctx, major, request, taken)
	if err != nil {
		return Result{}, err
	}

	//** Build prerequisite graph
	set, err := buildWorkingSet(ctx, run.catalog, seeds, taken, run.report)
	if err != nil {
		return Result{}, err
	}
	problem := Problem{
		Courses:       set.list(),
		Prerequisites: transitiveClosure(set.order, directPrerequisites(set)),
		Semesters:     request.Semesters,
		MinCredits:    request.MinCredits,
		MaxCredits:    request.MaxCredits,
		Start:         request.Start,
	}

	//** Assign semesters
	solution, err := run.engine.planner.Build(ctx, problem)
	if err != nil {
		return Result{}, err
	}
	result.Stats.NodesExpanded = solution.NodesExpanded
	result.Stats.Exhausted = solution.Exhausted

	if !solution.Found() {
		run.logger.Info("no schedule satisfies the constraints",
			zap.Int("courses", len(problem.Courses)),
			zap.Int("nodes", solution.NodesExpanded),
			zap.Bool("exhausted", solution.Exhausted),
		)
		result.Status = StatusInfeasible
		result.Warnings = run.warnings
		return result, nil
	}

	semesters := newSemesters(request.Semesters, request.StartYear, request.Start)
	for _, course := range problem.Courses {
		index := solution.Assignment[course.Id] - 1
		semesters[index].Courses = append(semesters[index].Courses, course)
	}

	//** Augment with general education
	if request.IncludeGER {
		pass := &gerPass{
			accessor:   run.catalog,
			categories: run.engine.categories,
			ceiling:    run.engine.ceiling,
			semesters:  semesters,
			taken:      taken,
			report:     run.report,
		}
		if err := pass.augment(ctx); err != nil {
			return Result{}, err
		}
	}

	result.Status = StatusFound
	result.Semesters = semesters
	result.Warnings = run.warnings
	return result, nil
}

// selectCourses resolves the required courses, one course per elective group and the additional courses
func (run *run) selectCourses(ctx context.Context, major catalog.MajorRequirement, request Request, taken map[string]bool) ([]catalog.Course, error) {
	seeds := make([]catalog.Course, 0)
	selected := make(map[string]bool)
	excluded := lo.SliceToMap(request.ExcludedElectives, func(id string) (string, bool) { return strings.TrimSpace(id), true })

	add := func(id string) (bool, error) {
		course, err := run.catalog.FetchCourse(ctx, id)
		if errors.Is(err, catalog.ErrNotFound) {
			return false, nil
		} else if err != nil {
			return false, err
		}
		seeds = append(seeds, course)
		selected[id] = true
		return true, nil
	}

	//** Required courses: the first alternative is always the one scheduled
	required := make(map[string]bool, len(major.Required))
	for _, ref := range major.Required {
		id := ref.Primary()
		required[id] = true
		if taken[id] || selected[id] {
			continue
		}
		if ok, err := add(id); err != nil {
			return nil, err
		} else if !ok {
			run.report(Warning{Kind: WarningNotFound, Course: id, Message: "required course is not in the catalog"})
		}
	}

	//** Electives: the first available candidate of each group
	for index, group := range major.Electives {
		satisfied, err := run.selectElective(ctx, group, taken, required, selected, excluded, add)
		if err != nil {
			return nil, err
		} else if !satisfied {
			run.report(Warning{Kind: WarningUnfilled, Message: fmt.Sprintf("elective group %v has no available course", index+1)})
		}
	}

	//** Additional courses requested by the student
	for _, id := range request.Additional {
		id = strings.TrimSpace(id)
		if id == "" || taken[id] || selected[id] {
			continue
		}
		if ok, err := add(id); err != nil {
			return nil, err
		} else if !ok {
			run.report(Warning{Kind: WarningNotFound, Course: id, Message: "additional course is not in the catalog"})
		}
	}

	return seeds, nil
}

func (run *run) selectElective(
	ctx context.Context,
	group []catalog.CourseRef,
	taken, required, selected, excluded map[string]bool,
	add func(id string) (bool, error),
) (bool, error) {
	candidates := make([]string, 0)
	for _, ref := range group {
		if !ref.IsWildcard() {
			candidates = append(candidates, ref...)
			continue
		}
		expanded, err := catalog.ExpandWildcard(ctx, run.catalog, ref.Primary())
		if err != nil {
			return false, err
		}
		candidates = append(candidates, expanded...)
	}

	// A completed candidate already satisfies the group
	if lo.SomeBy(candidates, func(id string) bool { return taken[id] && !excluded[id] }) {
		return true, nil
	}

	for _, id := range candidates {
		if excluded[id] || required[id] || selected[id] {
			continue
		}

		ok, err := add(id)
		if err != nil {
			return false, err
		} else if ok {
			return true, nil
		}
		run.logger.Debug("elective candidate not found", zap.String("course", id))
	}
	return false, nil
}
