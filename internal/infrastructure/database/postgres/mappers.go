package postgres

import (
	"freight-tms/internal/domain/company"
	"freight-tms/internal/domain/load"
	"freight-tms/internal/infrastructure/database/postgres/models"
)

func toLoadModel(l *load.Load) *models.LoadModel {
	return &models.LoadModel{
		ID:                 l.ID,
		TenantID:           l.TenantID,
		LoadNumber:         l.LoadNumber,
		BrokerID:           l.BrokerID,
		ShipperID:          l.ShipperID,
		CarrierID:          l.CarrierID,
		DriverID:           l.DriverID,
		DispatcherID:       l.DispatcherID,
		Status:             string(l.Status),
		OriginAddress:      l.OriginAddress,
		OriginLat:          l.OriginLat,
		OriginLng:          l.OriginLng,
		DestAddress:        l.DestAddress,
		DestLat:            l.DestLat,
		DestLng:            l.DestLng,
		Commodity:          l.Commodity,
		WeightLbs:          l.WeightLbs,
		EquipmentType:      l.EquipmentType,
		RoutingType:        l.RoutingType,
		CustomerRate:       l.CustomerRate,
		CarrierRate:        l.CarrierRate,
		PickupEarliest:     l.PickupEarliest,
		PickupLatest:       l.PickupLatest,
		DeliveryEarliest:   l.DeliveryEarliest,
		DeliveryLatest:     l.DeliveryLatest,
		Notes:              l.Notes,
		PostedToLoadboards: l.PostedToLoadboards,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func toLoadEntity(m *models.LoadModel) *load.Load {
	return &load.Load{
		ID:                 m.ID,
		TenantID:           m.TenantID,
		LoadNumber:         m.LoadNumber,
		BrokerID:           m.BrokerID,
		ShipperID:          m.ShipperID,
		CarrierID:          m.CarrierID,
		DriverID:           m.DriverID,
		DispatcherID:       m.DispatcherID,
		Status:             load.Status(m.Status),
		OriginAddress:      m.OriginAddress,
		OriginLat:          m.OriginLat,
		OriginLng:          m.OriginLng,
		DestAddress:        m.DestAddress,
		DestLat:            m.DestLat,
		DestLng:            m.DestLng,
		Commodity:          m.Commodity,
		WeightLbs:          m.WeightLbs,
		EquipmentType:      m.EquipmentType,
		RoutingType:        m.RoutingType,
		CustomerRate:       m.CustomerRate,
		CarrierRate:        m.CarrierRate,
		PickupEarliest:     m.PickupEarliest,
		PickupLatest:       m.PickupLatest,
		DeliveryEarliest:   m.DeliveryEarliest,
		DeliveryLatest:     m.DeliveryLatest,
		Notes:              m.Notes,
		PostedToLoadboards: m.PostedToLoadboards,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toStopModel(s *load.Stop) *models.LoadStopModel {
	return &models.LoadStopModel{
		ID:              s.ID,
		LoadID:          s.LoadID,
		StopNumber:      s.StopNumber,
		StopType:        string(s.StopType),
		LocationName:    s.LocationName,
		Address:         s.Address,
		Lat:             s.Lat,
		Lng:             s.Lng,
		ContactName:     s.ContactName,
		ContactPhone:    s.ContactPhone,
		ScheduledStart:  s.ScheduledStart,
		ScheduledEnd:    s.ScheduledEnd,
		ActualArrival:   s.ActualArrival,
		ActualDeparture: s.ActualDeparture,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func toStopEntity(m *models.LoadStopModel) *load.Stop {
	return &load.Stop{
		ID:              m.ID,
		LoadID:          m.LoadID,
		StopNumber:      m.StopNumber,
		StopType:        load.StopType(m.StopType),
		LocationName:    m.LocationName,
		Address:         m.Address,
		Lat:             m.Lat,
		Lng:             m.Lng,
		ContactName:     m.ContactName,
		ContactPhone:    m.ContactPhone,
		ScheduledStart:  m.ScheduledStart,
		ScheduledEnd:    m.ScheduledEnd,
		ActualArrival:   m.ActualArrival,
		ActualDeparture: m.ActualDeparture,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toCargoModel(c *load.Cargo) *models.LoadCargoModel {
	return &models.LoadCargoModel{
		ID:             c.ID,
		LoadID:         c.LoadID,
		PickupStopID:   c.PickupStopID,
		DeliveryStopID: c.DeliveryStopID,
		Commodity:      c.Commodity,
		WeightLbs:      c.WeightLbs,
		Pieces:         c.Pieces,
		Pallets:        c.Pallets,
		Hazmat:         c.Hazmat,
		TempRequired:   c.TempRequired,
		TempMinF:       c.TempMinF,
		TempMaxF:       c.TempMaxF,
		DeclaredValue:  c.DeclaredValue,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toCargoEntity(m *models.LoadCargoModel) *load.Cargo {
	return &load.Cargo{
		ID:             m.ID,
		LoadID:         m.LoadID,
		PickupStopID:   m.PickupStopID,
		DeliveryStopID: m.DeliveryStopID,
		Commodity:      m.Commodity,
		WeightLbs:      m.WeightLbs,
		Pieces:         m.Pieces,
		Pallets:        m.Pallets,
		Hazmat:         m.Hazmat,
		TempRequired:   m.TempRequired,
		TempMinF:       m.TempMinF,
		TempMaxF:       m.TempMaxF,
		DeclaredValue:  m.DeclaredValue,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toOfferModel(o *load.Offer) *models.LoadOfferModel {
	return &models.LoadOfferModel{
		ID:          o.ID,
		LoadID:      o.LoadID,
		CarrierID:   o.CarrierID,
		OfferedRate: o.OfferedRate,
		ExpiresAt:   o.ExpiresAt,
		Status:      string(o.Status),
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toOfferEntity(m *models.LoadOfferModel) *load.Offer {
	return &load.Offer{
		ID:          m.ID,
		LoadID:      m.LoadID,
		CarrierID:   m.CarrierID,
		OfferedRate: m.OfferedRate,
		ExpiresAt:   m.ExpiresAt,
		Status:      load.OfferStatus(m.Status),
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toAssignmentModel(a *load.Assignment) *models.LoadAssignmentModel {
	return &models.LoadAssignmentModel{
		ID:             a.ID,
		LoadID:         a.LoadID,
		CarrierID:      a.CarrierID,
		DriverID:       a.DriverID,
		EquipmentID:    a.EquipmentID,
		AssignedAt:     a.AssignedAt,
		UnassignedAt:   a.UnassignedAt,
		UnassignReason: a.UnassignReason,
		CreatedAt:      a.CreatedAt,
	}
}

func toAssignmentEntity(m *models.LoadAssignmentModel) *load.Assignment {
	return &load.Assignment{
		ID:             m.ID,
		LoadID:         m.LoadID,
		CarrierID:      m.CarrierID,
		DriverID:       m.DriverID,
		EquipmentID:    m.EquipmentID,
		AssignedAt:     m.AssignedAt,
		UnassignedAt:   m.UnassignedAt,
		UnassignReason: m.UnassignReason,
		CreatedAt:      m.CreatedAt,
	}
}

func toHistoryModel(h *load.StatusHistory) *models.LoadStatusHistoryModel {
	return &models.LoadStatusHistoryModel{
		ID:        h.ID,
		LoadID:    h.LoadID,
		OldStatus: string(h.OldStatus),
		NewStatus: string(h.NewStatus),
		Reason:    h.Reason,
		ActorID:   h.ActorID,
		CreatedAt: h.CreatedAt,
	}
}

func toHistoryEntity(m *models.LoadStatusHistoryModel) *load.StatusHistory {
	return &load.StatusHistory{
		ID:        m.ID,
		LoadID:    m.LoadID,
		OldStatus: load.Status(m.OldStatus),
		NewStatus: load.Status(m.NewStatus),
		Reason:    m.Reason,
		ActorID:   m.ActorID,
		CreatedAt: m.CreatedAt,
	}
}

func toEventModel(e *load.StatusEvent) *models.LoadStatusEventModel {
	return &models.LoadStatusEventModel{
		ID:        e.ID,
		LoadID:    e.LoadID,
		EventType: e.EventType,
		Note:      e.Note,
		Lat:       e.Lat,
		Lng:       e.Lng,
		Metadata:  e.Metadata,
		ActorID:   e.ActorID,
		CreatedAt: e.CreatedAt,
	}
}

func toEventEntity(m *models.LoadStatusEventModel) *load.StatusEvent {
	return &load.StatusEvent{
		ID:        m.ID,
		LoadID:    m.LoadID,
		EventType: m.EventType,
		Note:      m.Note,
		Lat:       m.Lat,
		Lng:       m.Lng,
		Metadata:  m.Metadata,
		ActorID:   m.ActorID,
		CreatedAt: m.CreatedAt,
	}
}

func toTrackingModel(p *load.TrackingPing) *models.LoadTrackingModel {
	return &models.LoadTrackingModel{
		ID:            p.ID,
		LoadID:        p.LoadID,
		Lat:           p.Lat,
		Lng:           p.Lng,
		SpeedMPH:      p.SpeedMPH,
		HeadingDeg:    p.HeadingDeg,
		OdometerMiles: p.OdometerMiles,
		FuelPercent:   p.FuelPercent,
		TemperatureF:  p.TemperatureF,
		StatusText:    p.StatusText,
		RecordedAt:    p.RecordedAt,
		CreatedAt:     p.CreatedAt,
	}
}

func toTrackingEntity(m *models.LoadTrackingModel) *load.TrackingPing {
	return &load.TrackingPing{
		ID:            m.ID,
		LoadID:        m.LoadID,
		Lat:           m.Lat,
		Lng:           m.Lng,
		SpeedMPH:      m.SpeedMPH,
		HeadingDeg:    m.HeadingDeg,
		OdometerMiles: m.OdometerMiles,
		FuelPercent:   m.FuelPercent,
		TemperatureF:  m.TemperatureF,
		StatusText:    m.StatusText,
		RecordedAt:    m.RecordedAt,
		CreatedAt:     m.CreatedAt,
	}
}

func toCompanyEntity(m *models.CompanyModel) *company.Company {
	return &company.Company{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Name:      m.Name,
		Type:      company.CompanyType(m.Type),
		MCNumber:  m.MCNumber,
		DOTNumber: m.DOTNumber,
		Phone:     m.Phone,
		Email:     m.Email,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
