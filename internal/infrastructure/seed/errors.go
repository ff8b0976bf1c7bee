package seed

import apperrors "github.com/jplfaria/gem-flux-mcp/pkg/errors"

func errReactionNotInModel(reactionID string) error {
	return apperrors.New(apperrors.CodeInvalidParam, "objective reaction not present in model").WithDetail(reactionID)
}
