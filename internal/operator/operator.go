package operator

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/pocket-planner/internal/operator/actions"
	"github.com/carson-networks/pocket-planner/internal/storage"
)

// Operator is one worker. Each item it takes runs in its own transaction.
type Operator struct {
	id      int
	storage *storage.Storage
	logger  *logrus.Logger
	queue   chan ActionItem
}

func NewOperator(id int, s *storage.Storage, logger *logrus.Logger, queue chan ActionItem) *Operator {
	return &Operator{
		id:      id,
		storage: s,
		logger:  logger,
		queue:   queue,
	}
}

// Run exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		start := time.Now()
		err := o.processItem(item)

		entry := o.logger.WithFields(logrus.Fields{
			"operator":   o.id,
			"action":     item.name,
			"durationMs": time.Since(start).Milliseconds(),
		})
		if err != nil {
			entry.WithError(err).Warn("Operator.Action.Failed")
		} else {
			entry.Debug("Operator.Action.Committed")
		}
		item.response <- ActionItemResponse{err: err}
	}
}

func (o *Operator) processItem(item ActionItem) error {
	if err := item.ctx.Err(); err != nil {
		return err
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return fmt.Errorf("storage.Write: %w", err)
	}

	if err = o.perform(item, writer); err != nil {
		_ = writer.Rollback(item.ctx)
		return err
	}

	if err = writer.Commit(item.ctx); err != nil {
		return fmt.Errorf("writer.Commit: %w", err)
	}
	return nil
}

func (o *Operator) perform(item ActionItem, writer *storage.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action %s panicked: %v", item.name, r)
		}
	}()
	return item.action.Perform(item.ctx, writer)
}

type ActionItem struct {
	ctx      context.Context
	name     string
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
