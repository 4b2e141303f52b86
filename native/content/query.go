package content

// Content returns the stored item.
func (e *Engine) Content(id uint64) (*Content, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.loadContent(id)
}

// Creator returns the creator record; unknown wallets yield a zero record.
func (e *Engine) Creator(wallet [20]byte) (*Creator, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.loadCreator(wallet)
}

// CreatorContents lists the ids of every item registered by creator, in
// creation order.
func (e *Engine) CreatorContents(creator [20]byte) ([]uint64, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.loadIDs(creatorIndexKey(creator))
}

func (e *Engine) HasUserLikedContent(id uint64, user [20]byte) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	return e.flag(likedKey(id, user))
}

func (e *Engine) HasUserReportedContent(id uint64, user [20]byte) (bool, error) {
	if err := e.ready(); err != nil {
		return false, err
	}
	return e.flag(reportedKey(id, user))
}
