package store

// Store provides access to all storage repositories of one request. Every
// repository issues its statements through the same executor.
type Store struct {
	exec        *Executor
	profile     *ProfileStore
	question    *QuestionStore
	option      *OptionStore
	tag         *TagStore
	vote        *VoteStore
	tagging     *TaggingStore
	suggestions *SuggestionEngine
	voteTable   *VoteTabulator
}

func NewStore(exec *Executor) *Store {
	return &Store{
		exec:        exec,
		profile:     NewProfileStore(exec),
		question:    NewQuestionStore(exec),
		option:      NewOptionStore(exec),
		tag:         NewTagStore(exec),
		vote:        NewVoteStore(exec),
		tagging:     NewTaggingStore(exec),
		suggestions: NewSuggestionEngine(exec),
		voteTable:   NewVoteTabulator(exec),
	}
}

func (s *Store) Profile() *ProfileStore {
	return s.profile
}

func (s *Store) Question() *QuestionStore {
	return s.question
}

func (s *Store) Option() *OptionStore {
	return s.option
}

func (s *Store) Tag() *TagStore {
	return s.tag
}

func (s *Store) Vote() *VoteStore {
	return s.vote
}

func (s *Store) Tagging() *TaggingStore {
	return s.tagging
}

func (s *Store) Suggestions() *SuggestionEngine {
	return s.suggestions
}

func (s *Store) VoteTable() *VoteTabulator {
	return s.voteTable
}

func (s *Store) Executor() *Executor {
	return s.exec
}
