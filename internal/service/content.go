package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/versioning"
)

var (
	nameTypes        = []string{model.NameTypeName, model.NameTypeAlternateName}
	descriptionTypes = []string{model.DescriptionTypeDescription, model.DescriptionTypeSummary, model.DescriptionTypeUserInstruction}
	channelTypes     = []string{
		model.ChannelTypeElectronic,
		model.ChannelTypePrintableForm,
		model.ChannelTypeServiceLocation,
		model.ChannelTypeWebPage,
		model.ChannelTypePhone,
	}
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// prepareContent normalizes languages and checks content against the rules of
// kind. It returns the normalized copy and the languages having a name.
func (s *CatalogService) prepareContent(ctx context.Context, tx store.Store, kind model.Kind, content *v1.Content, langs *languages) (*v1.Content, []string, error) {
	if content == nil {
		return nil, nil, invalid("content is required")
	}

	out := &v1.Content{
		Type:           strings.TrimSpace(content.Type),
		OrganizationID: content.OrganizationID,
		FundingType:    content.FundingType,
	}

	var err error
	if out.Names, err = localizedValues(content.Names, nameTypes, "name"); err != nil {
		return nil, nil, err
	}
	if out.Descriptions, err = localizedValues(content.Descriptions, descriptionTypes, "description"); err != nil {
		return nil, nil, err
	}

	var named []string
	for _, n := range out.Names {
		if n.Type == model.NameTypeName && !slices.Contains(named, n.Language) {
			named = append(named, n.Language)
		}
	}
	if len(named) == 0 {
		return nil, nil, invalid("at least one name is required")
	}
	versioning.SortLanguages(named)

	if content.ValidFrom != nil {
		from := content.ValidFrom.UTC()
		out.ValidFrom = &from
	}
	if content.ValidTo != nil {
		to := content.ValidTo.UTC()
		out.ValidTo = &to
	}
	if out.ValidFrom != nil && out.ValidTo != nil && !out.ValidTo.After(*out.ValidFrom) {
		return nil, nil, invalid("validity ends before it starts")
	}

	if kind != model.KindOrganization && len(content.AreaCodes) > 0 {
		return nil, nil, invalid("%s cannot have areas", kind)
	}
	if kind != model.KindService && (content.FundingType != "" || len(content.Classifications) > 0) {
		return nil, nil, invalid("%s cannot have funding or classifications", kind)
	}
	if kind != model.KindServiceChannel && (len(content.Keywords) > 0 || len(content.Addresses) > 0 || len(content.WebPages) > 0) {
		return nil, nil, invalid("%s cannot have keywords, addresses or web pages", kind)
	}

	switch kind {
	case model.KindOrganization:
		for _, code := range content.AreaCodes {
			code = strings.TrimSpace(code)
			if code != "" && !slices.Contains(out.AreaCodes, code) {
				out.AreaCodes = append(out.AreaCodes, code)
			}
		}
		slices.Sort(out.AreaCodes)

	case model.KindService:
		if out.FundingType != "" {
			if _, err := fundingTypeID(ctx, tx, out.FundingType); err != nil {
				return nil, nil, err
			}
		}
		if out.Classifications, err = s.prepareClassifications(ctx, tx, content.Classifications, langs); err != nil {
			return nil, nil, err
		}

	case model.KindServiceChannel:
		if out.Type != "" && !slices.Contains(channelTypes, out.Type) {
			return nil, nil, invalid("unknown channel type %q", out.Type)
		}
		if out.Keywords, err = prepareKeywords(content.Keywords); err != nil {
			return nil, nil, err
		}
		if out.Addresses, err = prepareAddresses(content.Addresses); err != nil {
			return nil, nil, err
		}
		if out.WebPages, err = prepareWebPages(content.WebPages); err != nil {
			return nil, nil, err
		}
	}

	return out, named, nil
}

func localizedValues(values []v1.LocalizedValue, types []string, what string) ([]v1.LocalizedValue, error) {
	out := make([]v1.LocalizedValue, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		lang, err := versioning.NormalizeLanguage(v.Language)
		if err != nil {
			return nil, err
		}
		typ := v.Type
		if typ == "" {
			typ = types[0]
		}
		if !slices.Contains(types, typ) {
			return nil, invalid("unknown %s type %q", what, typ)
		}
		value := strings.TrimSpace(v.Value)
		if value == "" {
			return nil, invalid("empty %s in %s", what, lang)
		}
		key := lang + "/" + typ
		if seen[key] {
			return nil, invalid("more than one %s %s in %s", typ, what, lang)
		}
		seen[key] = true
		out = append(out, v1.LocalizedValue{Language: lang, Type: typ, Value: value})
	}
	sortLocalized(out, types)
	return out, nil
}

func sortLocalized(values []v1.LocalizedValue, types []string) {
	order := make(map[string]int, len(versioning.DataLanguages))
	for i, code := range versioning.DataLanguages {
		order[code] = i
	}
	slices.SortStableFunc(values, func(a, b v1.LocalizedValue) int {
		if d := order[a.Language] - order[b.Language]; d != 0 {
			return d
		}
		return slices.Index(types, a.Type) - slices.Index(types, b.Type)
	})
}

func (s *CatalogService) prepareClassifications(ctx context.Context, tx store.Store, in map[string][]string, langs *languages) (map[string][]string, error) {
	if len(in) == 0 {
		return nil, nil
	}

	out := make(map[string][]string, len(in))
	for name, ids := range in {
		kind, err := model.ParseTaxonomyKind(name)
		if err != nil {
			return nil, err
		}
		if _, ok := kind.ServiceLinkTable(); !ok {
			return nil, invalid("services cannot be classified with %s", kind)
		}
		if len(ids) == 0 {
			continue
		}

		tree, err := loadTree(ctx, tx, kind, langs)
		if err != nil {
			return nil, err
		}
		if missing := tree.Missing(ids); len(missing) > 0 {
			return nil, fmt.Errorf("%w: %s %v", ErrUnknownTerm, kind, missing)
		}

		unique := slices.Clone(ids)
		slices.Sort(unique)
		out[string(kind)] = slices.Compact(unique)
	}
	return out, nil
}

func prepareKeywords(in []v1.Keyword) ([]v1.Keyword, error) {
	out := make([]v1.Keyword, 0, len(in))
	for _, k := range in {
		lang, err := versioning.NormalizeLanguage(k.Language)
		if err != nil {
			return nil, err
		}
		value := strings.TrimSpace(k.Value)
		if value == "" {
			return nil, invalid("empty keyword in %s", lang)
		}
		kw := v1.Keyword{Language: lang, Value: value}
		if !slices.Contains(out, kw) {
			out = append(out, kw)
		}
	}
	return out, nil
}

func prepareAddresses(in []v1.Address) ([]v1.Address, error) {
	out := make([]v1.Address, 0, len(in))
	for _, a := range in {
		a.Country = strings.ToUpper(a.Country)
		streets := make([]v1.Street, 0, len(a.Streets))
		seen := make(map[string]bool, len(a.Streets))
		for _, st := range a.Streets {
			lang, err := versioning.NormalizeLanguage(st.Language)
			if err != nil {
				return nil, err
			}
			if seen[lang] {
				return nil, invalid("more than one street name in %s", lang)
			}
			seen[lang] = true
			st.Language = lang
			streets = append(streets, st)
		}
		a.Streets = streets
		out = append(out, a)
	}
	return out, nil
}

func prepareWebPages(in []v1.WebPage) ([]v1.WebPage, error) {
	out := make([]v1.WebPage, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, p := range in {
		lang, err := versioning.NormalizeLanguage(p.Language)
		if err != nil {
			return nil, err
		}
		if seen[lang] {
			return nil, invalid("more than one web page in %s", lang)
		}
		seen[lang] = true
		out = append(out, v1.WebPage{Language: lang, URL: strings.TrimSpace(p.URL)})
	}
	return out, nil
}

func fundingTypeID(ctx context.Context, st store.Store, code string) (string, error) {
	types, err := st.ListServiceFundingTypes(ctx)
	if err != nil {
		return "", err
	}
	for _, t := range types {
		if t.Code == code {
			return t.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFundingType, code)
}

func fundingTypeCode(ctx context.Context, st store.Store, id string) (string, error) {
	types, err := st.ListServiceFundingTypes(ctx)
	if err != nil {
		return "", err
	}
	for _, t := range types {
		if t.ID == id {
			return t.Code, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrCorrupted, id)
}

// saveContent stores the child rows of a new version.
func saveContent(ctx context.Context, tx store.Store, kind model.Kind, versionID string, content *v1.Content, langs *languages, actor string) error {
	names, err := localizedRows(versionID, content.Names, langs, actor)
	if err != nil {
		return err
	}
	if err := tx.CreateNames(ctx, kind, names); err != nil {
		return err
	}
	descriptions, err := localizedRows(versionID, content.Descriptions, langs, actor)
	if err != nil {
		return err
	}
	if err := tx.CreateDescriptions(ctx, kind, descriptions); err != nil {
		return err
	}

	switch kind {
	case model.KindOrganization:
		areas := make([]*model.OrganizationArea, 0, len(content.AreaCodes))
		for _, code := range content.AreaCodes {
			areas = append(areas, &model.OrganizationArea{
				OrganizationVersionedID: versionID,
				AreaCode:                code,
				Auditing:                model.NewAuditing(actor),
			})
		}
		return tx.CreateOrganizationAreas(ctx, areas)

	case model.KindService:
		if content.FundingType != "" {
			id, err := fundingTypeID(ctx, tx, content.FundingType)
			if err != nil {
				return err
			}
			if err := tx.SetServiceFundingType(ctx, versionID, id); err != nil {
				return err
			}
		}
		for _, name := range sortedKeys(content.Classifications) {
			links := make([]*model.TermLink, 0, len(content.Classifications[name]))
			for _, termID := range content.Classifications[name] {
				links = append(links, &model.TermLink{ParentID: versionID, TermID: termID, Auditing: model.NewAuditing(actor)})
			}
			if err := tx.CreateServiceTerms(ctx, model.TaxonomyKind(name), links); err != nil {
				return err
			}
		}
		return nil

	case model.KindServiceChannel:
		keywords := make([]*model.Keyword, 0, len(content.Keywords))
		for _, k := range content.Keywords {
			id, err := langs.id(k.Language)
			if err != nil {
				return err
			}
			keywords = append(keywords, &model.Keyword{LocalizationID: id, Name: k.Value, Auditing: model.NewAuditing(actor)})
		}
		if err := tx.CreateChannelKeywords(ctx, versionID, keywords, actor); err != nil {
			return err
		}

		addresses := make([]*model.Address, 0, len(content.Addresses))
		for i, a := range content.Addresses {
			address := &model.Address{
				ID:            uuid.NewString(),
				ParentID:      versionID,
				CharacterCode: a.Character,
				OrderNumber:   i + 1,
				PostalCode:    a.PostalCode,
				Municipality:  a.Municipality,
				CountryCode:   a.Country,
				Latitude:      a.Latitude,
				Longitude:     a.Longitude,
				Auditing:      model.NewAuditing(actor),
			}
			for _, st := range a.Streets {
				id, err := langs.id(st.Language)
				if err != nil {
					return err
				}
				address.Streets = append(address.Streets, model.AddressStreet{
					AddressID:      address.ID,
					LocalizationID: id,
					Street:         st.Street,
					StreetNumber:   st.Number,
					Auditing:       model.NewAuditing(actor),
				})
			}
			addresses = append(addresses, address)
		}
		if err := tx.CreateAddresses(ctx, addresses); err != nil {
			return err
		}

		pages := make([]*model.ServiceChannelWebPage, 0, len(content.WebPages))
		for _, p := range content.WebPages {
			id, err := langs.id(p.Language)
			if err != nil {
				return err
			}
			pages = append(pages, &model.ServiceChannelWebPage{
				ParentID:       versionID,
				LocalizationID: id,
				URL:            p.URL,
				Auditing:       model.NewAuditing(actor),
			})
		}
		return tx.CreateWebPages(ctx, pages)
	}

	return nil
}

func localizedRows(versionID string, values []v1.LocalizedValue, langs *languages, actor string) ([]*model.LocalizedText, error) {
	rows := make([]*model.LocalizedText, 0, len(values))
	for _, v := range values {
		id, err := langs.id(v.Language)
		if err != nil {
			return nil, err
		}
		rows = append(rows, &model.LocalizedText{
			ParentID:       versionID,
			LocalizationID: id,
			TypeCode:       v.Type,
			Value:          v.Value,
			Auditing:       model.NewAuditing(actor),
		})
	}
	return rows, nil
}

// loadContent reads the content of a stored version.
func loadContent(ctx context.Context, st store.Store, kind model.Kind, row *model.VersionedRow, langs *languages) (*v1.Content, error) {
	content := &v1.Content{
		Type:      row.TypeCode,
		ValidFrom: row.ValidFrom,
		ValidTo:   row.ValidTo,
	}
	if row.OrganizationID != nil {
		content.OrganizationID = *row.OrganizationID
	}

	names, err := st.ListNames(ctx, kind, row.ID)
	if err != nil {
		return nil, err
	}
	content.Names = localizedValuesOf(names, langs)
	sortLocalized(content.Names, nameTypes)

	descriptions, err := st.ListDescriptions(ctx, kind, row.ID)
	if err != nil {
		return nil, err
	}
	content.Descriptions = localizedValuesOf(descriptions, langs)
	sortLocalized(content.Descriptions, descriptionTypes)

	switch kind {
	case model.KindOrganization:
		areas, err := st.ListOrganizationAreas(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range areas {
			content.AreaCodes = append(content.AreaCodes, a.AreaCode)
		}

	case model.KindService:
		id, err := st.GetServiceFundingType(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		if content.FundingType, err = fundingTypeCode(ctx, st, id); err != nil {
			return nil, err
		}
		for _, t := range model.TaxonomyKinds {
			if _, ok := t.ServiceLinkTable(); !ok {
				continue
			}
			links, err := st.ListServiceTerms(ctx, t, row.ID)
			if err != nil {
				return nil, err
			}
			if len(links) == 0 {
				continue
			}
			if content.Classifications == nil {
				content.Classifications = make(map[string][]string)
			}
			for _, l := range links {
				content.Classifications[string(t)] = append(content.Classifications[string(t)], l.TermID)
			}
			slices.Sort(content.Classifications[string(t)])
		}

	case model.KindServiceChannel:
		keywords, err := st.ListChannelKeywords(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		for _, k := range keywords {
			content.Keywords = append(content.Keywords, v1.Keyword{Language: langs.code(k.LocalizationID), Value: k.Name})
		}

		addresses, err := st.ListAddresses(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		for _, a := range addresses {
			address := v1.Address{
				Character:    a.CharacterCode,
				PostalCode:   a.PostalCode,
				Municipality: a.Municipality,
				Country:      a.CountryCode,
				Latitude:     a.Latitude,
				Longitude:    a.Longitude,
			}
			for _, street := range a.Streets {
				address.Streets = append(address.Streets, v1.Street{
					Language: langs.code(street.LocalizationID),
					Street:   street.Street,
					Number:   street.StreetNumber,
				})
			}
			slices.SortStableFunc(address.Streets, func(x, y v1.Street) int {
				return slices.Index(versioning.DataLanguages, x.Language) - slices.Index(versioning.DataLanguages, y.Language)
			})
			content.Addresses = append(content.Addresses, address)
		}

		pages, err := st.ListWebPages(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range pages {
			content.WebPages = append(content.WebPages, v1.WebPage{Language: langs.code(p.LocalizationID), URL: p.URL})
		}
		slices.SortStableFunc(content.WebPages, func(x, y v1.WebPage) int {
			return slices.Index(versioning.DataLanguages, x.Language) - slices.Index(versioning.DataLanguages, y.Language)
		})
	}

	return content, nil
}

func localizedValuesOf(rows []*model.LocalizedText, langs *languages) []v1.LocalizedValue {
	values := make([]v1.LocalizedValue, 0, len(rows))
	for _, r := range rows {
		values = append(values, v1.LocalizedValue{Language: langs.code(r.LocalizationID), Type: r.TypeCode, Value: r.Value})
	}
	return values
}

// namedLanguages returns the languages in which a version has a name.
func namedLanguages(ctx context.Context, st store.Store, kind model.Kind, versionID string, langs *languages) ([]string, error) {
	names, err := st.ListNames(ctx, kind, versionID)
	if err != nil {
		return nil, err
	}
	var codes []string
	for _, n := range names {
		code := langs.code(n.LocalizationID)
		if n.TypeCode == model.NameTypeName && !slices.Contains(codes, code) {
			codes = append(codes, code)
		}
	}
	versioning.SortLanguages(codes)
	return codes, nil
}

// filterContent keeps the localized parts of content in the given languages.
func filterContent(content *v1.Content, only []string) *v1.Content {
	keep := func(lang string) bool { return slices.Contains(only, lang) }

	out := *content
	out.Names = slices.DeleteFunc(slices.Clone(content.Names), func(v v1.LocalizedValue) bool { return !keep(v.Language) })
	out.Descriptions = slices.DeleteFunc(slices.Clone(content.Descriptions), func(v v1.LocalizedValue) bool { return !keep(v.Language) })
	out.Keywords = slices.DeleteFunc(slices.Clone(content.Keywords), func(k v1.Keyword) bool { return !keep(k.Language) })
	out.WebPages = slices.DeleteFunc(slices.Clone(content.WebPages), func(p v1.WebPage) bool { return !keep(p.Language) })
	out.Addresses = make([]v1.Address, 0, len(content.Addresses))
	for _, a := range content.Addresses {
		a.Streets = slices.DeleteFunc(slices.Clone(a.Streets), func(st v1.Street) bool { return !keep(st.Language) })
		out.Addresses = append(out.Addresses, a)
	}
	return &out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
