package service

import (
	"github.com/alexanderramin/cinder/internal/db"
	"github.com/alexanderramin/cinder/internal/repository"
)

// Repos bundles the repositories a service reads and writes.
type Repos struct {
	Users        repository.UserRepo
	WorkSessions repository.WorkSessionRepo
	Meetings     repository.MeetingRepo
	Emails       repository.EmailRepo
	Journal      repository.JournalRepo
	Scores       repository.ScoreRepo
}

// NewRepos builds SQL repositories over conn. conn may be a pool or a
// transaction handed out by a UnitOfWork.
func NewRepos(conn db.DBTX) Repos {
	return Repos{
		Users:        repository.NewSQLUserRepo(conn),
		WorkSessions: repository.NewSQLWorkSessionRepo(conn),
		Meetings:     repository.NewSQLMeetingRepo(conn),
		Emails:       repository.NewSQLEmailRepo(conn),
		Journal:      repository.NewSQLJournalRepo(conn),
		Scores:       repository.NewSQLScoreRepo(conn),
	}
}
